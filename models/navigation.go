package models

// Page is a top-level portal page.
type Page string

// Portal pages.
const (
	PageHome              Page = "home"
	PageAbout             Page = "about"
	PageContact           Page = "contact"
	PageFindLawyers       Page = "find-lawyers"
	PageDashboard         Page = "dashboard"
	PageLogin             Page = "login"
	PageResetPassword     Page = "reset-password"
	PageLegal             Page = "legal"
	PageEmailVerification Page = "email-verification"
)

// DashboardSubPage is the active panel within the authenticated area.
type DashboardSubPage string

// Dashboard subpages.
const (
	SubPageOverview     DashboardSubPage = "overview"
	SubPageCases        DashboardSubPage = "cases"
	SubPageVault        DashboardSubPage = "vault"
	SubPageSettings     DashboardSubPage = "settings"
	SubPageAppointments DashboardSubPage = "appointments"
	SubPageProfile      DashboardSubPage = "profile"
	SubPageVerification DashboardSubPage = "verification"
	SubPageFindLawyers  DashboardSubPage = "find-lawyers"
	SubPageClients      DashboardSubPage = "clients"
	SubPageBilling      DashboardSubPage = "billing"
	SubPageMessages     DashboardSubPage = "messages"
	SubPageSupport      DashboardSubPage = "support"
	SubPageAdminUsers   DashboardSubPage = "admin-users"
	SubPageAdminCases   DashboardSubPage = "admin-cases"
)

// NavigationHistoryEntry captures a prior location for the back stack.
// CaseID distinguishes "no case selected" from "field absent" with HasCase.
type NavigationHistoryEntry struct {
	Page    Page             `json:"page"`
	SubPage DashboardSubPage `json:"subPage,omitempty"`
	CaseID  string           `json:"caseId,omitempty"`
	HasCase bool             `json:"hasCase"`
}

// Location-style snapshot of where the user currently is.
type CurrentLocation struct {
	Page           Page             `json:"page"`
	SubPage        DashboardSubPage `json:"subPage"`
	SelectedCaseID string           `json:"selectedCaseId,omitempty"`
}
