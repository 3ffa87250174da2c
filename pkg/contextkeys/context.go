package contextkeys

// ContextKey - тип для ключей контекста (чтобы избежать коллизий со строками)
type ContextKey string

const (
	// DBContextKey - ключ, под которым DBMiddleware кладет *gorm.DB (пул или транзакцию)
	DBContextKey ContextKey = "db"
)
