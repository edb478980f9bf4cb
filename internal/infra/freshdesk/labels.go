package freshdesk

// Freshdesk encodes ticket status and priority as small integers. Unknown
// codes map to "Unknown" rather than erroring, so a provider-side addition
// cannot break ticket listing.

var statusLabels = map[int]string{
	2: "Open",
	3: "Pending",
	4: "Resolved",
	5: "Closed",
}

var priorityLabels = map[int]string{
	1: "Low",
	2: "Medium",
	3: "High",
	4: "Urgent",
}

func StatusLabel(code int) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return "Unknown"
}

func PriorityLabel(code int) string {
	if label, ok := priorityLabels[code]; ok {
		return label
	}
	return "Unknown"
}
