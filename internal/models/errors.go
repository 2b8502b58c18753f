package models

import "errors"

// Ошибки доменного уровня. Хранилище и сервисы возвращают их
// обёрнутыми через fmt.Errorf("%s: %w", op, err), границы HTTP
// распознают их через errors.Is и переводят в статусы ответов.
var (
	// ErrMovieNotFound — запись каталога с указанным ID отсутствует.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrNoOwner — владелец ещё не создан административной командой.
	ErrNoOwner = errors.New("owner does not exist")
	// ErrAmbiguousOwner — в таблице пользователей больше одной строки;
	// система корректна только при нуле или одном владельце.
	ErrAmbiguousOwner = errors.New("more than one owner row")
	// ErrInvalidCredentials — логин или пароль не подошли; ответ
	// клиенту не уточняет, что именно.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound — токен сеанса не найден или истёк.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidInput — нарушено полевое правило; состояние каталога
	// при этом не меняется.
	ErrInvalidInput = errors.New("invalid input")
)
