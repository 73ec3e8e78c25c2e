package model

type NameCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MonthlyCount struct {
	Month      string `json:"month"`
	Complaints int64  `json:"complaints"`
}

type SummaryStats struct {
	TotalComplaints   int64  `json:"totalComplaints"`
	AvgResolutionTime string `json:"avgResolutionTime"`
	ResolutionRate    string `json:"resolutionRate"`
}

// AnalyticsPayload mirrors what the admin dashboard renders.
type AnalyticsPayload struct {
	ComplaintsByCategory []NameCount    `json:"complaintsByCategory"`
	ComplaintsByStatus   []NameCount    `json:"complaintsByStatus"`
	MonthlyTrends        []MonthlyCount `json:"monthlyTrends"`
	SummaryStats         SummaryStats   `json:"summaryStats"`
}
