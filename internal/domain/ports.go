package domain

// EntityEvent описывает событие изменения сущности каталога для внешних
// потребителей (шина событий). Полезная нагрузка формируется на стороне
// messaging-слоя.
type EntityEvent struct {
	Type string
	Kind Kind
	ID   int64
}

// EventPublisher публикует события об изменениях сущностей. Публикация
// синхронная и необязательная: хранилище остаётся источником истины,
// ошибка публикации не отменяет выполненную операцию.
type EventPublisher interface {
	PublishEntityEvent(event EntityEvent) error
}
