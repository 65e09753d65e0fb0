package entity

// Orderable is anything that can live on a user-reorderable board. The board
// store only ever looks at the identity; everything else is display payload.
type Orderable interface {
	EntityID() string
}

type AssignedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       int           `json:"status"`
	Completed    bool          `json:"completed"`
	ProjectID    string        `json:"project_id"`
	CreatedAt    string        `json:"created_at"`
	AssignedUser *AssignedUser `json:"assigned_user,omitempty"`
}

func (t Task) EntityID() string { return t.ID }

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

func (p Project) EntityID() string { return p.ID }
