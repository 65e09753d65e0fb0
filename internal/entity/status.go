package entity

type StatusCategory string

const (
	StatusPending  StatusCategory = "pending"
	StatusAssigned StatusCategory = "assigned"
	StatusRealized StatusCategory = "realized"
	StatusDeleted  StatusCategory = "deleted"
)

// Status codes used by the task backend.
const (
	CodePending  = 1
	CodeAssigned = 2
	CodeRealized = 3
	CodeDeleted  = 4
)

// StatusFromCode maps a backend status code to its semantic category.
// Total: every integer lands somewhere, unknown codes fall back to realized.
func StatusFromCode(code int) StatusCategory {
	switch code {
	case CodePending:
		return StatusPending
	case CodeAssigned:
		return StatusAssigned
	case CodeRealized:
		return StatusRealized
	case CodeDeleted:
		return StatusDeleted
	default:
		return StatusRealized
	}
}

// StatusStyle is the badge configuration for one category: label text plus
// the color tokens the frontend applies to badges and glow effects.
type StatusStyle struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Badge  string `json:"badge"`
	Border string `json:"border"`
	Glow   string `json:"glow"`
}

var statusStyles = map[StatusCategory]StatusStyle{
	StatusPending: {
		Label:  "Pendiente",
		Icon:   "alert-circle",
		Color:  "indigo-500",
		Badge:  "indigo-500/10",
		Border: "indigo-500/20",
		Glow:   "indigo-500/40",
	},
	StatusAssigned: {
		Label:  "Assignadas",
		Icon:   "clock",
		Color:  "amber-500",
		Badge:  "amber-500/10",
		Border: "amber-500/20",
		Glow:   "amber-500/40",
	},
	StatusRealized: {
		Label:  "Completada",
		Icon:   "check",
		Color:  "green-500",
		Badge:  "green-500/10",
		Border: "green-500/20",
		Glow:   "green-500/40",
	},
	StatusDeleted: {
		Label:  "Eliminadas",
		Icon:   "delete",
		Color:  "red-500",
		Badge:  "red-500/10",
		Border: "red-500/20",
		Glow:   "red-500/40",
	},
}

// StyleFor returns the badge configuration for a category. Every category
// returned by StatusFromCode has an entry, so the lookup cannot miss.
func StyleFor(c StatusCategory) StatusStyle {
	style, ok := statusStyles[c]
	if !ok {
		return statusStyles[StatusRealized]
	}
	return style
}

// CanDelete reports whether a task with the given status code may be sent to
// the bin. Tasks already in the bin cannot be deleted again from the board.
func CanDelete(code int) bool {
	return code != CodeDeleted
}

// CanComplete reports whether "mark complete" is available. Only assigned
// tasks can be completed.
func CanComplete(code int) bool {
	return code == CodeAssigned
}
