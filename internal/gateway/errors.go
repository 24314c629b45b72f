package gateway

// Сетевые сбои и ошибки сервера приводятся ровно к двум типам:
// TransportError прячет исходную ошибку за общим сообщением,
// ServerError передаёт сообщение бэкенда без изменений.

const networkErrorMessage = "Сетевая ошибка. Попробуйте позже."

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return networkErrorMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}
