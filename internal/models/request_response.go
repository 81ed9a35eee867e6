package models

// Request models
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateCredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddStudentRequest struct {
	Name  string `json:"name" binding:"required"`
	Class string `json:"class" binding:"required"`
}

type AddTeacherRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddLessonHourRequest struct {
	Label string `json:"label" binding:"required"`
}

type BookRequest struct {
	Kind      BookKind `json:"kind" binding:"required,oneof=mandatory general"`
	Title     string   `json:"title" binding:"required"`
	Author    string   `json:"author" binding:"required"`
	Publisher string   `json:"publisher" binding:"required"`
}

type RecordLoanRequest struct {
	Student  string   `json:"student" binding:"required"`
	Class    string   `json:"class" binding:"required"`
	BookIDs  []string `json:"bookIds" binding:"required"`
	LoanDate string   `json:"loanDate" binding:"required"`
	DueDate  string   `json:"dueDate" binding:"required"`
}

type ReturnRequest struct {
	IDs        []string `json:"ids" binding:"required"`
	ReturnDate string   `json:"returnDate" binding:"required"`
}

type ClassVisitRequest struct {
	Date    string   `json:"date" binding:"required"`
	Class   string   `json:"class" binding:"required"`
	Teacher string   `json:"teacher" binding:"required"`
	Subject string   `json:"subject" binding:"required"`
	Hours   []string `json:"hours" binding:"required,min=1"`
}

type StudentVisitRequest struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Class   string `json:"class" binding:"required"`
	Student string `json:"student" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	Username  string `json:"username,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type RecordLoanResponse struct {
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

type ReturnResponse struct {
	Status   string `json:"status"`
	Returned int    `json:"returned"`
}

// BorrowerRank is one row of the top-borrowers view. Class is looked up from
// the current student collection and falls back to "-" when the student no
// longer exists.
type BorrowerRank struct {
	Student string `json:"student"`
	Class   string `json:"class"`
	Count   int    `json:"count"`
}

// HistoryEntry is one reduced row of a student's loan history.
type HistoryEntry struct {
	LoanDate   string `json:"loanDate"`
	Book       string `json:"book"`
	Status     string `json:"status"`
	ReturnDate string `json:"returnDate"`
}

type OverdueReport struct {
	Status           string        `json:"status"`
	Transactions     []Transaction `json:"transactions"`
	DistinctStudents int           `json:"distinctStudents"`
}

type DashboardReport struct {
	Status                  string         `json:"status"`
	TotalStudents           int            `json:"totalStudents"`
	TotalTeachers           int            `json:"totalTeachers"`
	ClassVisitHours         int            `json:"classVisitHours"`
	ClassVisitClasses       int            `json:"classVisitClasses"`
	StudentVisits           int            `json:"studentVisits"`
	ActiveLoans             int            `json:"activeLoans"`
	ActiveBorrowers         int            `json:"activeBorrowers"`
	ReturnedLoans           int            `json:"returnedLoans"`
	ParticipationRate       float64        `json:"participationRate"`
	TopBorrowers            []BorrowerRank `json:"topBorrowers"`
	OverdueTransactions     []Transaction  `json:"overdueTransactions"`
	OverdueDistinctStudents int            `json:"overdueDistinctStudents"`
}

type ImportResponse struct {
	Status   string `json:"status"`
	Imported int    `json:"imported"`
}

type CountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
