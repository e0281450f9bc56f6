package domain

import "encoding/json"

// RawAmenities - значение поля amenities на границе API.
// Клиенты присылают либо нормальный JSON-массив строк, либо (из multipart-форм)
// JSON-строку, внутри которой закодирован массив. Непарсящееся значение
// молча отбрасывается - ошибку наружу не поднимаем.
type RawAmenities struct {
	values []string
	valid  bool
}

// NewRawAmenities создает уже разрешенное значение (для тестов и форм)
func NewRawAmenities(values []string) RawAmenities {
	return RawAmenities{values: values, valid: true}
}

// ParseAmenitiesString разбирает строковое значение из multipart-формы.
// Строка должна содержать JSON-массив строк, иначе значение считается невалидным.
func ParseAmenitiesString(s string) RawAmenities {
	var parsed []string
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return RawAmenities{}
	}
	return RawAmenities{values: parsed, valid: true}
}

func (r *RawAmenities) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		r.values, r.valid = list, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var parsed []string
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			r.values, r.valid = parsed, true
		}
		// строка есть, но внутри не JSON-массив - отбрасываем без ошибки
		return nil
	}

	// ни массив, ни строка (число, объект и т.п.) - тоже отбрасываем
	return nil
}

// Resolve возвращает разобранный список либо ранее провалидированное
// значение (или пустой список), если вход был невалидным.
func (r RawAmenities) Resolve(previous []string) []string {
	if r.valid {
		if r.values == nil {
			return []string{}
		}
		return r.values
	}
	if previous != nil {
		return previous
	}
	return []string{}
}

// Valid сообщает, удалось ли разобрать вход
func (r RawAmenities) Valid() bool {
	return r.valid
}
