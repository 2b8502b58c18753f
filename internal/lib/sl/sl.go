// Package sl дополняет slog атрибутами, которые нужны по всему проекту.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы записи об
// ошибках в логе имели одинаковую форму:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
