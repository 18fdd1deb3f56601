package create_booking

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SessionID     string           // Сессия оформления; её временные брони освобождаются (опционально)
	ServiceID     domain.ServiceID // Услуга
	StartDate     time.Time        // Первый день пребывания
	EndDate       time.Time        // Последний день пребывания (включительно)
	Quantity      int              // Количество животных
	Animals       []domain.Animal  // Данные животных (если указаны, по одному на каждое)
	Contact       domain.Contact   // Контакты владельца
	ArrivalTime   types.TimeString // Время приезда (например, "09:00")
	DepartureTime types.TimeString // Время отъезда
	FullDay       bool             // Для flash без времени: явно полный день
	Sterilized    bool             // Животные стерилизованы
	PaymentRef    *string          // Ссылка на авторизованный платёж (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	ServiceID     domain.ServiceID // Услуга
	StartDate     time.Time        // Первый день пребывания
	EndDate       time.Time        // Последний день пребывания
	Quantity      int              // Количество животных
	Days          int              // Количество дней
	RatePerUnit   float64          // Тариф за единицу
	Total         float64          // Итоговая стоимость
	SurchargeNote string           // Пояснение к доплате
	Status        string           // Статус бронирования
	PaymentStatus string           // Статус оплаты
	CreatedAt     time.Time        // Время создания
}
