package domain

import "time"

type BetDetail struct {
	Odds  float64 `json:"odds"`
	Stack float64 `json:"stack"`
	Time  string  `json:"time"`
}

type Report struct {
	ID               int64       `json:"id"`
	Date             time.Time   `json:"date"`
	UserName         string      `json:"userName"`
	Agent            string      `json:"agent"`
	Origin           string      `json:"origin"`
	SportName        string      `json:"sportName"`
	EventName        string      `json:"eventName"`
	MarketName       string      `json:"marketName"`
	ACBalance        float64     `json:"acBalance"`
	AfterVoidBalance float64     `json:"afterVoidBalance"`
	PL               float64     `json:"pl"`
	BetDetails       []BetDetail `json:"betDetails"`
	CatchBy          string      `json:"catchBy"`
	ProofType        string      `json:"proofType"`
	ProofStatus      string      `json:"proofStatus"`
	Remark           string      `json:"remark"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// NaturalKey identifies a report for duplicate detection. Text fields are
// compared case-insensitively.
type NaturalKey struct {
	Date       time.Time
	UserName   string
	Agent      string
	SportName  string
	EventName  string
	MarketName string
}

func (r Report) NaturalKey() NaturalKey {
	return NaturalKey{
		Date:       r.Date,
		UserName:   r.UserName,
		Agent:      r.Agent,
		SportName:  r.SportName,
		EventName:  r.EventName,
		MarketName: r.MarketName,
	}
}

// RawReport is one candidate report as received from a client or parsed from
// a workbook, before validation.
type RawReport struct {
	Date             LooseString   `json:"date"`
	UserName         LooseString   `json:"userName"`
	Agent            LooseString   `json:"agent"`
	Origin           LooseString   `json:"origin"`
	SportName        LooseString   `json:"sportName"`
	EventName        LooseString   `json:"eventName"`
	MarketName       LooseString   `json:"marketName"`
	ACBalance        LooseString   `json:"acBalance"`
	AfterVoidBalance LooseString   `json:"afterVoidBalance"`
	PL               LooseString   `json:"pl"`
	BetDetails       RawBetDetails `json:"betDetails"`
	CatchBy          LooseString   `json:"catchBy"`
	ProofType        LooseString   `json:"proofType"`
	ProofStatus      LooseString   `json:"proofStatus"`
	Remark           LooseString   `json:"remark"`
	SheetName        string        `json:"sheetName,omitempty"`
	RowIndex         *int          `json:"rowIndex,omitempty"`

	// DecodeErr is set by DecodeRawReports when the row's JSON could not be
	// decoded. Only SheetName and RowIndex are populated in that case.
	DecodeErr error `json:"-"`
}

type RawBetDetail struct {
	Odds  LooseString `json:"odds"`
	Stack LooseString `json:"stack"`
	Time  LooseString `json:"time"`
}

type ImportRowError struct {
	Message   string `json:"msg"`
	SheetName string `json:"sheetName,omitempty"`
	RowIndex  *int   `json:"rowIndex,omitempty"`
}

type ImportResult struct {
	Success  bool             `json:"-"`
	Message  string           `json:"message"`
	Accepted []Report         `json:"data"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time

	UserName   string
	Agent      string
	Origin     string
	SportName  string
	EventName  string
	MarketName string
	CatchBy    string
	Remark     string

	ACBalanceMin        *float64
	ACBalanceMax        *float64
	AfterVoidBalanceMin *float64
	AfterVoidBalanceMax *float64
	PLMin               *float64
	PLMax               *float64
	OddsMin             *float64
	OddsMax             *float64
	StackMin            *float64
	StackMax            *float64

	ProofType   string
	ProofStatus string
	SearchTerm  string

	SortKey   string
	SortOrder string

	Limit  int
	Offset int
}

type ReportPage struct {
	Items []Report `json:"items"`
	Count int      `json:"count"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

type Whitelabel struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logoUrl"`
	PrimaryColor string    `json:"primaryColor"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ProofType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sport and Market share the same shape.
type NamedRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Client struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	WhitelabelID int64     `json:"whitelabelId"`
	ProofTypeID  int64     `json:"proofTypeId"`
	SportID      int64     `json:"sportId"`
	MarketID     int64     `json:"marketId"`
	EventName    string    `json:"eventName"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AdminUser struct {
	AdminID   int64     `json:"adminId"`
	Username  string    `json:"username"`
	RoleID    int64     `json:"roleId"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
}
