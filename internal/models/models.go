package models

// BookKind classifies a book for loan rules: mandatory (textbook) titles may
// be borrowed in bulk, general titles one per loan submission.
type BookKind string

const (
	BookKindMandatory BookKind = "mandatory"
	BookKindGeneral   BookKind = "general"
)

// TransactionStatus is the loan lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusBorrowed TransactionStatus = "borrowed"
	StatusReturned TransactionStatus = "returned"
)

// ReturnDateNone is the sentinel stored while a transaction is still
// borrowed. A transaction is returned exactly when ReturnDate holds a real
// date instead of this sentinel.
const ReturnDateNone = "-"

// Student is a registered borrower.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// Teacher is a staff member referenced by class visits.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subject is a school subject referenced by class visits.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LessonHour is one selectable lesson period, e.g. "1. (07.15 - 07.55)".
type LessonHour struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Book is a catalog entry. Editing a book never touches transactions that
// already copied its fields.
type Book struct {
	ID        string   `json:"id"`
	Kind      BookKind `json:"kind"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Publisher string   `json:"publisher"`
}

// Transaction is one loan of one book. Student and book fields are copied by
// value at loan time; later edits or deletions of the source records do not
// alter the historical record. Only Status and ReturnDate change after
// creation, and only through the return transition.
type Transaction struct {
	ID         string            `json:"id"`
	LoanDate   string            `json:"loanDate"`
	LoanTime   string            `json:"loanTime"`
	Student    string            `json:"student"`
	Class      string            `json:"class"`
	Book       string            `json:"book"`
	Kind       BookKind          `json:"kind"`
	Author     string            `json:"author"`
	Publisher  string            `json:"publisher"`
	DueDate    string            `json:"dueDate"`
	Status     TransactionStatus `json:"status"`
	ReturnDate string            `json:"returnDate"`
}

// Returned reports whether the return transition has happened.
func (t Transaction) Returned() bool {
	return t.Status == StatusReturned
}

// ClassVisit logs one class using the library during one or more lesson
// periods on one date. Hours holds the selected lesson-hour labels joined
// with ", ".
type ClassVisit struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Class   string `json:"class"`
	Teacher string `json:"teacher"`
	Subject string `json:"subject"`
	Hours   string `json:"hours"`
}

// StudentVisit logs one individual student's ad hoc visit.
type StudentVisit struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Class   string `json:"class"`
	Student string `json:"student"`
	Purpose string `json:"purpose"`
}

// Credentials is the single login pair. Stored and compared in plaintext;
// backup and restore must reproduce the pair byte for byte.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// State is the full Entity Store document: every collection the application
// owns, persisted wholesale to one storage slot on every mutation.
type State struct {
	Credentials   Credentials    `json:"credentials"`
	Students      []Student      `json:"students"`
	Teachers      []Teacher      `json:"teachers"`
	Subjects      []Subject      `json:"subjects"`
	LessonHours   []LessonHour   `json:"lessonHours"`
	Books         []Book         `json:"books"`
	Transactions  []Transaction  `json:"transactions"`
	ClassVisits   []ClassVisit   `json:"classVisits"`
	StudentVisits []StudentVisit `json:"studentVisits"`
}

// Clone returns a deep copy. Entities are plain value structs, so copying
// the slices is sufficient.
func (s *State) Clone() *State {
	c := *s
	c.Students = append([]Student(nil), s.Students...)
	c.Teachers = append([]Teacher(nil), s.Teachers...)
	c.Subjects = append([]Subject(nil), s.Subjects...)
	c.LessonHours = append([]LessonHour(nil), s.LessonHours...)
	c.Books = append([]Book(nil), s.Books...)
	c.Transactions = append([]Transaction(nil), s.Transactions...)
	c.ClassVisits = append([]ClassVisit(nil), s.ClassVisits...)
	c.StudentVisits = append([]StudentVisit(nil), s.StudentVisits...)
	return &c
}

// Normalize repairs a decoded state so every collection is present: nil
// slices become empty and a blank credential pair falls back to the default.
func (s *State) Normalize() {
	if s.Credentials.Username == "" && s.Credentials.Password == "" {
		s.Credentials = Credentials{Username: "admin", Password: "admin"}
	}
	if s.Students == nil {
		s.Students = []Student{}
	}
	if s.Teachers == nil {
		s.Teachers = []Teacher{}
	}
	if s.Subjects == nil {
		s.Subjects = []Subject{}
	}
	if s.LessonHours == nil {
		s.LessonHours = []LessonHour{}
	}
	if s.Books == nil {
		s.Books = []Book{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.ClassVisits == nil {
		s.ClassVisits = []ClassVisit{}
	}
	if s.StudentVisits == nil {
		s.StudentVisits = []StudentVisit{}
	}
}

// DefaultState returns the seed Entity Store used on first run and as the
// base when decoding snapshots or backups with missing collections.
func DefaultState() *State {
	return &State{
		Credentials: Credentials{Username: "admin", Password: "admin"},
		Students: []Student{
			{ID: "1", Name: "Budi Santoso", Class: "7A"},
			{ID: "2", Name: "Siti Aminah", Class: "8B"},
			{ID: "3", Name: "Rudi Hartono", Class: "9C"},
		},
		Teachers: []Teacher{
			{ID: "1", Name: "NUR FADILAH, S.Pd"},
			{ID: "2", Name: "NUR ARINAH, S.Pd"},
		},
		Subjects: []Subject{
			{ID: "1", Name: "BAHASA INDONESIA"},
			{ID: "2", Name: "BAHASA INGGRIS"},
			{ID: "3", Name: "MATEMATIKA"},
			{ID: "4", Name: "IPA"},
		},
		LessonHours: []LessonHour{
			{ID: "1", Label: "1. (07.15 - 07.55)"},
			{ID: "2", Label: "2. (07.55 - 08.35)"},
			{ID: "3", Label: "3. (08.35 - 09.15)"},
			{ID: "4", Label: "4. (09.15 - 09.55)"},
			{ID: "5", Label: "Istirahat (09.55 - 10.35)"},
			{ID: "6", Label: "5. (10.35 - 11.15)"},
			{ID: "7", Label: "6. (11.15 - 11.55)"},
			{ID: "8", Label: "7. (11.55 - 12.35)"},
			{ID: "9", Label: "8. (12.35 - 13.15)"},
		},
		Books: []Book{
			{ID: "B001", Kind: BookKindMandatory, Title: "Matematika", Author: "Kemendikbud", Publisher: "Pusat Kurikulum"},
			{ID: "B002", Kind: BookKindGeneral, Title: "Laskar Pelangi", Author: "Andrea Hirata", Publisher: "Bentang Pustaka"},
		},
		Transactions:  []Transaction{},
		ClassVisits:   []ClassVisit{},
		StudentVisits: []StudentVisit{},
	}
}
