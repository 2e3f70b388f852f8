// Package admin describes how the external presentation layer should
// list, filter, and search accounts. It is a data-driven description
// consumed read-only; nothing here carries behavior.
package admin

type Fieldset struct {
	Label  string
	Fields []string
}

type ModelConfig struct {
	ListDisplay    []string
	ListFilter     []string
	SearchFields   []string
	Ordering       []string
	ReadonlyFields []string
	Fieldsets      []Fieldset
}

var Accounts = ModelConfig{
	ListDisplay: []string{
		"username",
		"email",
		"role",
		"is_active",
		"is_staff",
		"created_at",
	},
	ListFilter: []string{
		"role",
		"is_active",
		"is_staff",
	},
	SearchFields: []string{
		"username",
		"email",
		"first_name",
		"last_name",
	},
	Ordering:       []string{"-created_at"},
	ReadonlyFields: []string{"created_at", "last_login"},
	Fieldsets: []Fieldset{
		{Label: "", Fields: []string{"username"}},
		{Label: "Personal Info", Fields: []string{"first_name", "last_name", "email"}},
		{Label: "Account Info", Fields: []string{"role"}},
		{Label: "Permissions", Fields: []string{"is_active", "is_staff", "is_superuser"}},
		{Label: "Important Dates", Fields: []string{"last_login", "created_at"}},
	},
}
