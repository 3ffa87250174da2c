package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeBook_ServerEmptyCompletedKeepsClient(t *testing.T) {
	client := BookProgress{
		CompletedChapters: []int{1, 2},
		Reflections:       map[int]string{1: "local note"},
	}
	server := BookProgress{
		CompletedChapters: []int{},
		Reflections:       map[int]string{1: "server note", 2: "server note 2"},
	}

	merged := MergeBook(client, server)

	// Клиентский completed выживает, потому что серверный список пуст
	assert.Equal(t, []int{1, 2}, merged.CompletedChapters)
	// Сервер выигрывает конфликт по ключу 1, ключ 2 добавляется
	assert.Equal(t, map[int]string{1: "server note", 2: "server note 2"}, merged.Reflections)
}

func TestMergeBook_ServerNonEmptyCompletedWinsOutright(t *testing.T) {
	client := BookProgress{CompletedChapters: []int{1, 2, 3}}
	server := BookProgress{CompletedChapters: []int{1}}

	merged := MergeBook(client, server)

	// Сервер авторитетен, как только у него есть данные: ровно [1]
	assert.Equal(t, []int{1}, merged.CompletedChapters)
}

func TestMergeBook_ClientOnlyReflectionsPreserved(t *testing.T) {
	client := BookProgress{Reflections: map[int]string{3: "offline note"}}
	server := BookProgress{}

	merged := MergeBook(client, server)
	assert.Equal(t, "offline note", merged.Reflections[3])
}

func TestMergeBook_Empty(t *testing.T) {
	merged := MergeBook(BookProgress{}, BookProgress{})
	assert.Empty(t, merged.CompletedChapters)
	assert.Nil(t, merged.Reflections)
}

func TestMergeSnapshot_UnionOfBooks(t *testing.T) {
	client := Snapshot{
		"book-a": {CompletedChapters: []int{1}},
		"book-b": {Reflections: map[int]string{1: "client"}},
	}
	server := Snapshot{
		"book-b": {CompletedChapters: []int{2}, Reflections: map[int]string{1: "server"}},
		"book-c": {CompletedChapters: []int{5}},
	}

	merged := MergeSnapshot(client, server)

	assert.Len(t, merged, 3)
	assert.Equal(t, []int{1}, merged["book-a"].CompletedChapters)
	assert.Equal(t, []int{2}, merged["book-b"].CompletedChapters)
	assert.Equal(t, "server", merged["book-b"].Reflections[1])
	assert.Equal(t, []int{5}, merged["book-c"].CompletedChapters)
}
