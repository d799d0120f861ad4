package models

// Mensagens de validação compartilhadas entre a entidade e o validador.
// A entidade e o validador são dois pontos de aplicação independentes das
// mesmas regras; ambos precisam emitir exatamente o mesmo texto.
const (
	MsgTitleRequired = "O título é obrigatório."
	MsgTitleTooShort = "O título deve ter pelo menos 3 caracteres."
	MsgTitleTooLong  = "O título deve ter no máximo 200 caracteres."
	MsgTitleCharset  = "O título contém caracteres não permitidos."

	MsgDescriptionTooLong = "A descrição deve ter no máximo 1000 caracteres."

	MsgStatusInvalid   = "Status inválido. Valores aceitos: pending, in_progress, completed, cancelled."
	MsgPriorityInvalid = "Prioridade inválida. Valores aceitos: low, medium, high, urgent."

	MsgDueDateInvalid = "Data de vencimento inválida. Use AAAA-MM-DD, AAAA-MM-DDTHH:MM ou AAAA-MM-DD HH:MM:SS."
	MsgDueDatePast    = "A data de vencimento não pode estar no passado."

	MsgUserIDRequired    = "O usuário é obrigatório."
	MsgUserIDInvalid     = "Usuário inválido."
	MsgCategoryIDInvalid = "Categoria inválida."
	MsgCategoryNotFound  = "Categoria não encontrada."
)
