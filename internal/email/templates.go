package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов
const (
	TemplateSwapRequested     = "swap_requested"
	TemplateSwapStatusChanged = "swap_status_changed"
	TemplateSessionReminder   = "session_reminder"
)

var builtinTemplates = map[string]string{
	TemplateSwapRequested: `<p>Hi {{.RecipientName}},</p>
<p><strong>{{.RequesterName}}</strong> would like to learn <strong>{{.SkillName}}</strong> from you.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
<p><a href="{{.SwapURL}}">Open the request</a></p>`,

	TemplateSwapStatusChanged: `<p>Hi {{.RecipientName}},</p>
<p>Your swap for <strong>{{.SkillName}}</strong> is now <strong>{{.Status}}</strong>.</p>
<p><a href="{{.SwapURL}}">Open the swap</a></p>`,

	TemplateSessionReminder: `<p>Hi {{.RecipientName}},</p>
<p>Your next <strong>{{.SkillName}}</strong> session with {{.PartnerName}} starts at <strong>{{.SessionAt}}</strong>.</p>
{{if .Platform}}<p>Platform: {{.Platform}}</p>{{end}}{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
<p><a href="{{.SwapURL}}">Open the swap</a></p>`,
}

// TemplateManager хранит разобранные html/template шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template, len(builtinTemplates)),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет (или заменяет) шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=zero").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
