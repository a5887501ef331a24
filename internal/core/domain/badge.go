package domain

// StatusBadge is the single source of truth for presenting a canonical status:
// every consumer (admin JSON, future views) reads this table instead of
// carrying its own switch.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusBadges = map[TransactionStatus]StatusBadge{
	TransactionStatusPending:   {Label: "Pending", Color: "warning"},
	TransactionStatusInProcess: {Label: "In Process", Color: "info"},
	TransactionStatusApproved:  {Label: "Approved", Color: "success"},
	TransactionStatusRejected:  {Label: "Rejected", Color: "danger"},
	TransactionStatusFailed:    {Label: "Failed", Color: "danger"},
	TransactionStatusCancelled: {Label: "Cancelled", Color: "secondary"},
	TransactionStatusRefunded:  {Label: "Refunded", Color: "dark"},
}

// BadgeFor returns the display badge for a status. Unknown statuses get a
// neutral badge rather than an error; they can only come from historic data.
func BadgeFor(s TransactionStatus) StatusBadge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return StatusBadge{Label: string(s), Color: "light"}
}
