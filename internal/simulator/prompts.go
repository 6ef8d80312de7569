package simulator

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

var partyNames = map[domain.Party]string{
	domain.PartyPlaintiff: "Истец",
	domain.PartyDefendant: "Ответчик",
}

var counselNames = map[domain.Party]string{
	domain.PartyPlaintiff: "АДВОКАТ ИСТЦА",
	domain.PartyDefendant: "АДВОКАТ ОТВЕТЧИКА",
}

// aiRoles assigns the judge and the counsel of the absent side to the model.
func aiRoles(user domain.Party) string {
	return fmt.Sprintf("Роли ИИ: 1. СУДЬЯ. 2. %s.", counselNames[user.Opponent()])
}

func openingPrompt(user domain.Party, materials string) string {
	absent := partyNames[user.Opponent()]
	return fmt.Sprintf(`%s
Пользователь: %s. ВНИМАНИЕ: %s отсутствует, говори ТОЛЬКО с пользователем.
Контекст: ГПК РК. Материалы: %s
Начни заседание. Представься как СУДЬЯ и задай первый вопрос.`,
		aiRoles(user), partyNames[user], absent, materials)
}

func turnPrompt(user domain.Party, turns []domain.ChatTurn, answer string) string {
	history := historyLines(append(turns[:len(turns):len(turns)], domain.ChatTurn{Role: domain.RoleUser, Text: answer}))
	return fmt.Sprintf(`%s
Правило: ИГНОРИРУЙ отсутствующего %s. Говори только с Пользователем.
История: %s
Ответ: "%s"
Задача: Кто говорит сейчас (Судья или Оппонент)? Оцени ответ. Задай СЛЕДУЮЩИЙ вопрос.`,
		aiRoles(user), partyNames[user.Opponent()], history, answer)
}

func debriefPrompt(user domain.Party, turns []domain.ChatTurn) string {
	return fmt.Sprintf("Разбор (РК). Роль: %s. История: %s\nОтчет: Контекст, Сильные, Слабые, Итог.",
		partyNames[user], historyLines(turns))
}

func historyLines(turns []domain.ChatTurn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = fmt.Sprintf("%s: %s", t.Role, t.Text)
	}
	return strings.Join(lines, "\n")
}
