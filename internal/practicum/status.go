package practicum

import "fmt"

var verdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

// FormatStatus builds the notification text for a homework.
func FormatStatus(hw Homework) (string, error) {
	if hw.Status == nil {
		return "", &Error{Kind: KindStatusMissing, Msg: "статус домашней работы отсутствует"}
	}

	verdict, ok := verdicts[*hw.Status]
	if !ok {
		return "", &Error{
			Kind: KindUnknownStatus,
			Msg:  fmt.Sprintf("статус домашней работы %q не соответствует ожидаемому", *hw.Status),
		}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.HomeworkName, verdict), nil
}
