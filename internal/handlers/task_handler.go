package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/pdf"
	"taskhub/internal/services"
	"taskhub/internal/validation"
)

type TaskHandler struct {
	service services.TaskService
	users   services.UserService
	reports pdf.Generator

	// telegram notifications, optional
	tg *services.TelegramService
}

func NewTaskHandler(service services.TaskService, users services.UserService, reports pdf.Generator, tg *services.TelegramService) *TaskHandler {
	return &TaskHandler{service: service, users: users, reports: reports, tg: tg}
}

// @Summary      Criar tarefa
// @Description  Cria uma nova tarefa após sanitização e validação do payload
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      validation.TaskInput  true  "Dados da tarefa"
// @Success      201   {object}  services.Result
// @Failure      400   {object}  services.Result
// @Failure      422   {object}  services.Result
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	uid := getUserID(c)
	log.Printf("[task][create] call by userID=%d", uid)

	var in validation.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		respondResult(c, services.Fail(services.CodeInvalidJSON, err.Error()))
		return
	}
	// ownership comes from the token, never from the payload
	in.UserID = &uid

	res := h.service.Create(c.Request.Context(), in)
	if !res.Success {
		log.Printf("[task][create][fail] code=%s", res.ErrorCode)
		respondResult(c, res)
		return
	}
	task := res.Data.(*models.Task)
	log.Printf("[task][create][ok] id=%d title=%q", task.ID, task.Title)
	c.JSON(http.StatusCreated, res)

	h.notifyOwner(c, task, "📌 Nova tarefa")
}

// @Summary      Buscar tarefa
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "ID da tarefa"
// @Success      200  {object}  services.Result
// @Failure      404  {object}  services.Result
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondResult(c, services.Fail(services.CodeMissingID, "Identificador da tarefa ausente ou inválido."))
		return
	}
	respondResult(c, h.service.GetByID(c.Request.Context(), id, getUserID(c)))
}

// @Summary      Listar tarefas
// @Tags         Tasks
// @Produce      json
// @Param        status       query     string  false  "Filtrar por status"
// @Param        priority     query     string  false  "Filtrar por prioridade"
// @Param        category_id  query     int     false  "Filtrar por categoria"
// @Success      200  {object}  services.Result
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	uid := getUserID(c)
	log.Printf("[task][list] call by userID=%d q=%v", uid, c.Request.URL.RawQuery)

	filter := models.TaskFilter{UserID: &uid}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		pr := models.TaskPriority(v)
		filter.Priority = &pr
	}
	if v, ok := c.GetQuery("category_id"); ok {
		if id, err := parseInt64(v); err == nil {
			filter.CategoryID = &id
		} else {
			log.Printf("[task][list][warn] bad category_id=%q: %v", v, err)
		}
	}

	respondResult(c, h.service.GetAll(c.Request.Context(), filter))
}

// @Summary      Atualizar tarefa
// @Description  Atualização parcial; apenas tarefas pendentes podem ser editadas
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "ID da tarefa"
// @Param        task  body      validation.TaskInput  true  "Campos a alterar"
// @Success      200   {object}  services.Result
// @Failure      409   {object}  services.Result
// @Failure      422   {object}  services.Result
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondResult(c, services.Fail(services.CodeMissingID, "Identificador da tarefa ausente ou inválido."))
		return
	}

	var in validation.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		respondResult(c, services.Fail(services.CodeInvalidJSON, err.Error()))
		return
	}

	res := h.service.Update(c.Request.Context(), id, getUserID(c), in)
	log.Printf("[task][update] id=%d success=%v code=%s", id, res.Success, res.ErrorCode)
	respondResult(c, res)

	if res.Success {
		if task, ok := res.Data.(*models.Task); ok {
			h.notifyOwner(c, task, "✏️ Tarefa atualizada")
		}
	}
}

// @Summary      Excluir tarefa
// @Description  Apenas tarefas pendentes com pelo menos 5 dias de criação
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "ID da tarefa"
// @Success      200  {object}  services.Result
// @Failure      409  {object}  services.Result
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondResult(c, services.Fail(services.CodeMissingID, "Identificador da tarefa ausente ou inválido."))
		return
	}
	res := h.service.Delete(c.Request.Context(), id, getUserID(c))
	log.Printf("[task][delete] id=%d success=%v code=%s", id, res.Success, res.ErrorCode)
	respondResult(c, res)
}

// @Summary      Concluir tarefa
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "ID da tarefa"
// @Success      200  {object}  services.Result
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	h.statusShortcut(c, "complete", h.service.Complete)
}

// @Summary      Iniciar tarefa
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "ID da tarefa"
// @Success      200  {object}  services.Result
// @Router       /tasks/{id}/start [post]
func (h *TaskHandler) Start(c *gin.Context) {
	h.statusShortcut(c, "start", h.service.Start)
}

// @Summary      Duplicar tarefa
// @Description  Cria uma cópia pendente da tarefa informada
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "ID da tarefa"
// @Success      201  {object}  services.Result
// @Router       /tasks/{id}/duplicate [post]
func (h *TaskHandler) Duplicate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondResult(c, services.Fail(services.CodeMissingID, "Identificador da tarefa ausente ou inválido."))
		return
	}
	res := h.service.Duplicate(c.Request.Context(), id, getUserID(c))
	log.Printf("[task][duplicate] id=%d success=%v code=%s", id, res.Success, res.ErrorCode)
	if res.Success {
		c.JSON(http.StatusCreated, res)
		return
	}
	respondResult(c, res)
}

// @Summary      Estatísticas de tarefas
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  services.Result
// @Router       /tasks/statistics [get]
func (h *TaskHandler) Statistics(c *gin.Context) {
	uid := getUserID(c)
	respondResult(c, h.service.Statistics(c.Request.Context(), uid))
}

// @Summary      Relatório de estatísticas em PDF
// @Tags         Tasks
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /tasks/statistics/pdf [get]
func (h *TaskHandler) StatisticsPDF(c *gin.Context) {
	uid := getUserID(c)

	res := h.service.Statistics(c.Request.Context(), uid)
	if !res.Success {
		respondResult(c, res)
		return
	}
	stats := res.Data.(*models.TaskStatistics)

	name := "—"
	if user, err := h.users.GetByID(c.Request.Context(), uid); err == nil && user != nil {
		name = user.Name
	}

	path, err := h.reports.GenerateStatisticsReport(name, stats)
	if err != nil {
		log.Printf("[task][stats-pdf][err] user=%d: %v", uid, err)
		respondResult(c, services.Fail(services.CodeStatisticsError, err.Error()))
		return
	}
	c.FileAttachment(path, "relatorio_tarefas.pdf")
}

func (h *TaskHandler) statusShortcut(c *gin.Context, op string, fn func(ctx context.Context, id, userID int64) *services.Result) {
	id, ok := parseIDParam(c)
	if !ok {
		respondResult(c, services.Fail(services.CodeMissingID, "Identificador da tarefa ausente ou inválido."))
		return
	}
	res := fn(c.Request.Context(), id, getUserID(c))
	log.Printf("[task][%s] id=%d success=%v code=%s", op, id, res.Success, res.ErrorCode)
	respondResult(c, res)

	if res.Success {
		if task, ok := res.Data.(*models.Task); ok {
			h.notifyOwner(c, task, "🔁 Status alterado para "+models.StatusLabel(task.Status))
		}
	}
}

func parseInt64(v string) (int64, error) {
	return strconv.ParseInt(v, 10, 64)
}

func (h *TaskHandler) notifyOwner(c *gin.Context, task *models.Task, prefix string) {
	if h.tg == nil || h.users == nil || task == nil {
		return
	}
	owner, err := h.users.GetByID(c.Request.Context(), task.UserID)
	if err != nil || owner == nil {
		log.Printf("[task][notify] owner lookup failed: user=%d err=%v", task.UserID, err)
		return
	}
	if !owner.NotifyTelegram || owner.TelegramChatID == nil {
		return
	}
	_ = h.tg.NotifyTask(*owner.TelegramChatID, prefix, task)
}
