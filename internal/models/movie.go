// Package models содержит доменные структуры каталога фильмов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Movie представляет запись каталога, используемую
// в бизнес-логике и хранилище.
// Год хранится строкой — так он записан и в базе данных.
type Movie struct {
	ID    int    // Идентификатор записи, назначается хранилищем
	Title string // Название фильма, 1-60 символов
	Year  string // Год выпуска в текстовом виде
}

// CreateMovieRequest используется для приёма данных при создании записи.
// Правило для года на этом пути: от 1 до 4 цифр.
type CreateMovieRequest struct {
	Title string `json:"title" validate:"required,max=60"`
	Year  string `json:"year" validate:"required,numeric,min=1,max=4"`
}

// UpdateMovieRequest используется для приёма данных при редактировании записи.
// Правило для года на этом пути строже: ровно 4 цифры.
type UpdateMovieRequest struct {
	Title string `json:"title" validate:"required,max=60"`
	Year  string `json:"year" validate:"required,numeric,len=4"`
}

// UpdateNameRequest используется для смены отображаемого имени владельца.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}
