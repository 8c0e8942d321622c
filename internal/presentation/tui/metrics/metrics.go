// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines             = 2
	HeaderWidthPadding      = 7
	SidebarTitleLines       = 2
	SidebarRightBorderWidth = 1
	SidebarMinTotalWidth    = 72
	StatusLines             = 1

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
	FeedRowLines      = 3

	InterestBarWidth   = 20
	SidebarInterests   = 8
	DashboardInterests = 10
)
