package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"perpus-server/internal/models"
	"perpus-server/internal/store"
)

// Business errors surfaced to the API layer.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyBookSelection = errors.New("at least one book must be selected")
	ErrBookNotFound       = errors.New("selected book does not exist")
	ErrMixedBookKinds     = errors.New("all books in one loan must share the same kind")
	ErrGeneralSingleBook  = errors.New("general books are loaned one per submission")
	ErrNoReturnIDs        = errors.New("at least one transaction must be selected")
	ErrNoExportData       = errors.New("no data to export")
	ErrInvalidBackup      = errors.New("backup document is not valid")
	ErrInvalidImport      = errors.New("import file is not a valid spreadsheet")
)

// Service defines all the business logic operations
type Service interface {
	// Authentication and settings
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	UpdateCredentials(ctx context.Context, req models.UpdateCredentialsRequest) error

	// Master data
	ListStudents() []models.Student
	AddStudent(ctx context.Context, req models.AddStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ListTeachers() []models.Teacher
	AddTeacher(ctx context.Context, req models.AddTeacherRequest) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) error
	ListSubjects() []models.Subject
	AddSubject(ctx context.Context, req models.AddSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
	ListLessonHours() []models.LessonHour
	AddLessonHour(ctx context.Context, req models.AddLessonHourRequest) (*models.LessonHour, error)
	DeleteLessonHour(ctx context.Context, id string) error
	ListBooks() []models.Book
	AddBook(ctx context.Context, req models.BookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, id string, req models.BookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error

	// Loan lifecycle
	RecordLoan(ctx context.Context, req models.RecordLoanRequest) ([]models.Transaction, error)
	ReturnTransactions(ctx context.Context, req models.ReturnRequest) (int, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(status, student string) []models.Transaction

	// Visit logs
	RecordClassVisit(ctx context.Context, req models.ClassVisitRequest) (*models.ClassVisit, error)
	ListClassVisits() []models.ClassVisit
	DeleteClassVisit(ctx context.Context, id string) error
	RecordStudentVisit(ctx context.Context, req models.StudentVisitRequest) (*models.StudentVisit, error)
	UpdateStudentVisit(ctx context.Context, id string, req models.StudentVisitRequest) (*models.StudentVisit, error)
	ListStudentVisits() []models.StudentVisit
	DeleteStudentVisit(ctx context.Context, id string) error

	// Derived views
	Dashboard() *models.DashboardReport
	Overdue() *models.OverdueReport
	RankTopBorrowers(limit int) []models.BorrowerRank
	HistoryForStudent(student string) []models.HistoryEntry

	// Spreadsheet boundary
	ImportStudents(ctx context.Context, r io.Reader) (int, error)
	ImportTeachers(ctx context.Context, r io.Reader) (int, error)
	ImportSubjects(ctx context.Context, r io.Reader) (int, error)
	ExportTopBorrowers() (*bytes.Buffer, string, error)
	ExportOverdue() (*bytes.Buffer, string, error)
	ExportActiveLoans() (*bytes.Buffer, string, error)
	ExportReturns() (*bytes.Buffer, string, error)
	ExportStudentHistory(student string) (*bytes.Buffer, string, error)
	ExportClassVisits() (*bytes.Buffer, string, error)
	ExportStudentVisits() (*bytes.Buffer, string, error)

	// Backup
	ExportBackup() ([]byte, string, error)
	RestoreBackup(ctx context.Context, data []byte) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	store         *store.Store
	jwtSecret     []byte
	tokenDuration time.Duration
	logger        *zap.Logger
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(st *store.Store, jwtSecret string, tokenDuration time.Duration, logger *zap.Logger) Service {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &DefaultService{
		store:         st,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

// Login compares the submitted pair against the stored credentials. The
// comparison is plain string equality; there is no lockout and no attempt
// counter.
func (s *DefaultService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	creds := s.store.Snapshot().Credentials
	if req.Username != creds.Username || req.Password != creds.Password {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(creds.Username)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Status:    "success",
		Username:  creds.Username,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// UpdateCredentials replaces the stored login pair.
func (s *DefaultService) UpdateCredentials(ctx context.Context, req models.UpdateCredentialsRequest) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Credentials = models.Credentials{
			Username: req.Username,
			Password: req.Password,
		}
		return nil
	})
}

// Helper methods
func (s *DefaultService) generateJWT(username string) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": username,
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
