package entitlement

import "sort"

// BookProgress - снапшот прогресса по одной книге, единица сверки
// между клиентским кэшем и сервером.
type BookProgress struct {
	CompletedChapters []int          `json:"completed_chapters"`
	Reflections       map[int]string `json:"reflections"`
}

// Snapshot - прогресс пользователя по всем книгам, ключ - bookID.
type Snapshot map[string]BookProgress

// MergeBook сливает клиентский и серверный прогресс одной книги.
//
// Правило асимметричное:
//   - completed: если серверный список НЕ пуст, он побеждает целиком
//     (сервер авторитетен, как только у него есть хоть какие-то данные);
//     иначе остается клиентский.
//   - reflections: по-ключевое слияние - базой клиентская карта, поверх
//     накладываются все серверные ключи (сервер выигрывает конфликт,
//     клиентские ключи без конфликта сохраняются).
//
// Результат становится новым клиентским кэшем и НЕ пишется на сервер
// автоматически: серверное состояние меняется только явными
// markComplete/saveReflection.
func MergeBook(client, server BookProgress) BookProgress {
	var merged BookProgress

	if len(server.CompletedChapters) > 0 {
		merged.CompletedChapters = append([]int(nil), server.CompletedChapters...)
	} else {
		merged.CompletedChapters = append([]int(nil), client.CompletedChapters...)
	}
	sort.Ints(merged.CompletedChapters)

	if len(client.Reflections) > 0 || len(server.Reflections) > 0 {
		merged.Reflections = make(map[int]string, len(client.Reflections)+len(server.Reflections))
		for k, v := range client.Reflections {
			merged.Reflections[k] = v
		}
		for k, v := range server.Reflections {
			merged.Reflections[k] = v
		}
	}

	return merged
}

// MergeSnapshot применяет MergeBook к объединению ключей обоих
// снапшотов.
func MergeSnapshot(client, server Snapshot) Snapshot {
	merged := make(Snapshot, len(client)+len(server))

	for bookID, cp := range client {
		merged[bookID] = MergeBook(cp, server[bookID])
	}
	for bookID, sp := range server {
		if _, seen := merged[bookID]; !seen {
			merged[bookID] = MergeBook(BookProgress{}, sp)
		}
	}

	return merged
}
