package model

// Kid is one member of the family roster. The roster is small and fixed;
// kids are renamed or recolored but never deleted in normal operation.
type Kid struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
