// Package models содержит доменную модель владельца каталога.
// Система рассчитана ровно на одну учётную запись — владельца,
// который единственный имеет право изменять каталог фильмов.
package models

// User представляет владельца каталога.
//
// Поле LoginName заполняется только административной командой
// и до первой настройки может отсутствовать (nil) — до этого
// момента вход в систему невозможен.
type User struct {
	UID          string  // Уникальный идентификатор владельца
	Name         string  // Отображаемое имя, до 20 символов
	LoginName    *string // Логин для входа, задаётся административно
	PasswordHash string  // bcrypt-хэш пароля, никогда не содержит исходный пароль
}
