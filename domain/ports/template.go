package ports

// TemplateEngine renders parameter documents before they are parsed.
type TemplateEngine interface {
	// Render resolves the placeholders in raw using vars.
	Render(raw []byte, vars map[string]string) ([]byte, error)
}
