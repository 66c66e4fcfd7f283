package tools

// BuildRegistry creates a Registry with all template management tools.
func BuildRegistry(api MetaAPI) *Registry {
	r := NewRegistry()
	r.Register(NewGetTemplateFormat())
	r.Register(NewCreateTemplate(api))
	r.Register(NewListTemplates(api))
	r.Register(NewDeleteTemplate(api))
	r.Register(NewGetTemplateStatus(api))
	r.Register(NewListConnectedWABAs(api))
	return r
}

// wabaIDParam is the waba_id property shared by most tool schemas.
func wabaIDParam() *ParamSchema {
	return &ParamSchema{
		Type:        "string",
		Description: `WhatsApp Business Account ID (numeric string, e.g. "278469610073775")`,
	}
}
