package practicum

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the decoded body of the homework statuses endpoint.
// Homeworks stays raw so its presence and type can be checked.
type Response struct {
	Homeworks   json.RawMessage `json:"homeworks"`
	CurrentDate *int64          `json:"current_date"`
}

// Homework is one record of the homeworks list. A missing name stays empty.
type Homework struct {
	HomeworkName string  `json:"homework_name"`
	Status       *string `json:"status"`
}

// Timestamp returns current_date.
func (r *Response) Timestamp() (int64, error) {
	if r.CurrentDate == nil {
		return 0, &Error{Kind: KindMissingKey, Msg: "отсутствует ожидаемый ключ 'current_date'"}
	}
	return *r.CurrentDate, nil
}

// ExtractHomeworks validates the homeworks field and decodes it.
// An empty list yields ErrEmptyHomeworkList.
func ExtractHomeworks(r *Response) ([]Homework, error) {
	if r == nil || len(r.Homeworks) == 0 {
		return nil, &Error{Kind: KindMissingKey, Msg: "отсутствует ожидаемый ключ 'homeworks'"}
	}

	if typ := jsonType(r.Homeworks); typ != "array" {
		return nil, &Error{Kind: KindWrongType, Msg: fmt.Sprintf("под ключом 'homeworks' пришел не list, а %s", typ)}
	}

	var homeworks []Homework
	if err := json.Unmarshal(r.Homeworks, &homeworks); err != nil {
		return nil, &Error{Kind: KindWrongType, Msg: "элементы 'homeworks' не являются объектами", Err: err}
	}

	if len(homeworks) == 0 {
		return nil, ErrEmptyHomeworkList
	}

	return homeworks, nil
}

func jsonType(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}

	switch c := trimmed[0]; {
	case c == '[':
		return "array"
	case c == '{':
		return "object"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "bool"
	case c == 'n':
		return "null"
	default:
		return "number"
	}
}
