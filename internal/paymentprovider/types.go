package paymentprovider

// CreateIntentRequest параметры создания платёжного намерения.
type CreateIntentRequest struct {
	Amount   int64  // сумма в минимальных единицах валюты
	Currency string // трёхбуквенный код валюты
	// IdempotencyKey ключ идемпотентности: повтор запроса с тем же
	// ключом не создаёт второе списание.
	IdempotencyKey string
}

// CreateIntentResponse ответ провайдера на создание платёжного намерения.
type CreateIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// apiError тело ошибки провайдера.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
