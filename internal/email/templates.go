package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager хранит и рендерит html/template шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Встроенные шаблоны; AddTemplate позволяет их переопределить.
	tm.AddTemplate("verification", verificationTemplate)
	tm.AddTemplate("purchase_receipt", purchaseReceiptTemplate)
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

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

const verificationTemplate = `
<html>
<body>
  <h2>Подтверждение email</h2>
  <p>Для активации аккаунта перейдите по ссылке:</p>
  <p><a href="{{.VerificationURL}}">Подтвердить email</a></p>
  <p>Если вы не регистрировались, просто проигнорируйте это письмо.</p>
</body>
</html>
`

const purchaseReceiptTemplate = `
<html>
<body>
  <h2>Спасибо за покупку!</h2>
  <p>Книга <b>{{.BookTitle}}</b> теперь доступна полностью.</p>
  <p>Сумма: {{.Amount}} {{.Currency}}</p>
</body>
</html>
`
