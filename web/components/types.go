package components

// NavItem is one sidebar link of the dashboard shell.
type NavItem struct {
	Label string
	Href  string
}

// Nav lists the dashboard sections in sidebar order.
var Nav = []NavItem{
	{"Dashboard", "/dashboard"},
	{"QR Codes", "/dashboard/qr"},
	{"Analytics", "/dashboard/analytics"},
	{"Projects", "/dashboard/projects"},
	{"Billing", "/dashboard/billing"},
	{"Settings", "/dashboard/settings"},
}

// ShellData is what the dashboard chrome needs from the request.
type ShellData struct {
	Title    string
	Active   string
	UserName string
}
