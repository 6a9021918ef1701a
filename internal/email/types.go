package email

// Email - письмо одному или нескольким получателям
type Email struct {
	To       []string
	Subject  string
	Body     string // text/plain, если HTMLBody пуст
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
