package models

// Session описывает серверную часть сеанса: непрозрачный токен,
// который клиент предъявляет в каждом запросе, разрешается
// в эту структуру через хранилище сеансов.
type Session struct {
	UID  string `json:"uid"`  // Идентификатор владельца
	Name string `json:"name"` // Отображаемое имя на момент входа
}
