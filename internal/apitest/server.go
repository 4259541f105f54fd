// Package apitest runs an in-memory task tracker service for tests.
package apitest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

// Request is one call seen by the server.
type Request struct {
	Method string
	Path   string
	Query  string
}

type failure struct {
	status int
	detail string
}

type Server struct {
	mu sync.Mutex

	users []model.User
	tasks map[int64]*model.Task
	files map[int64][]byte

	nextTaskID       int64
	nextNoteID       int64
	nextAttachmentID int64

	requests []Request
	failures map[string]failure
	now      func() time.Time
}

var DefaultUsers = []model.User{
	{ID: 1, Username: "alice", DisplayName: "Alice"},
	{ID: 2, Username: "bob", DisplayName: "Bob"},
}

func NewServer(users ...model.User) *Server {
	if len(users) == 0 {
		users = DefaultUsers
	}
	return &Server{
		users:    append([]model.User(nil), users...),
		tasks:    make(map[int64]*model.Task),
		files:    make(map[int64][]byte),
		failures: make(map[string]failure),
		now:      time.Now,
	}
}

// Start serves s on a local listener that is closed when t finishes.
func Start(t testing.TB, users ...model.User) (*Server, string) {
	t.Helper()
	server := NewServer(users...)
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return server, httpServer.URL
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.record)

	router.GET("/users", s.listUsers)
	router.GET("/tasks/my-tasks-view", s.taskView)
	router.GET("/tasks/:id", s.getTask)
	router.POST("/tasks", s.createTask)
	router.PUT("/tasks/:id", s.updateTask)
	router.DELETE("/tasks/:id", s.deleteTask)
	router.POST("/tasks/:id/complete", s.completeTask)
	router.POST("/tasks/:id/reopen", s.reopenTask)
	router.POST("/tasks/:id/notes", s.addNote)
	router.PUT("/notes/:id", s.updateNote)
	router.DELETE("/notes/:id", s.deleteNote)
	router.POST("/notes/:id/attachments", s.uploadAttachment)
	router.GET("/attachments/:id/download", s.downloadAttachment)
	router.DELETE("/attachments/:id", s.deleteAttachment)
	return router
}

// Fail makes every later request to method+path answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, detail: "injected failure"}
}

// Recover undoes Fail for method+path.
func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path exactly.
func (s *Server) Count(method, path string) int {
	count := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// SeedTask stores a task directly, bypassing the HTTP surface.
func (s *Server) SeedTask(input model.TaskInput) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTask(input)
}

func (s *Server) Task(taskID int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return model.Task{}, false
	}
	return *task, true
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
	})
	fail, ok := s.failures[c.Request.Method+" "+c.Request.URL.Path]
	s.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(fail.status, gin.H{"detail": fail.detail})
		return
	}
	c.Next()
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.users)
}

func (s *Server) taskView(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_id is required"})
		return
	}
	status := c.Query("status")
	assignedTo, _ := strconv.ParseInt(c.Query("assigned_to"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := func(task *model.Task) bool {
		if status != "" && task.Status != status {
			return false
		}
		return assignedTo == 0 || task.AssignedTo == assignedTo
	}
	c.JSON(http.StatusOK, model.TaskViews{
		AssignedToMe: s.filtered(func(task *model.Task) bool {
			return matches(task) && task.AssignedTo == userID
		}),
		AssignedByMe: s.filtered(func(task *model.Task) bool {
			return matches(task) && task.AssignedBy != nil && *task.AssignedBy == userID
		}),
		AllTasks: s.filtered(matches),
	})
}

func (s *Server) getTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.lookupTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) createTask(c *gin.Context) {
	var input model.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.user(input.AssignedTo); !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Assigned user not found"})
		return
	}
	c.JSON(http.StatusCreated, s.insertTask(input))
}

func (s *Server) updateTask(c *gin.Context) {
	var update model.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.lookupTask(c)
	if !ok {
		return
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.AssignedTo != nil {
		user, ok := s.user(*update.AssignedTo)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Assigned user not found"})
			return
		}
		task.AssignedTo = user.ID
		task.AssignedUser = user
	}
	if update.Status != nil {
		s.setStatus(task, *update.Status)
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.lookupTask(c)
	if !ok {
		return
	}
	for _, note := range task.Notes {
		for _, attachment := range note.Attachments {
			delete(s.files, attachment.ID)
		}
	}
	delete(s.tasks, task.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) completeTask(c *gin.Context) {
	s.transition(c, model.StatusCompleted)
}

func (s *Server) reopenTask(c *gin.Context) {
	s.transition(c, model.StatusPending)
}

func (s *Server) transition(c *gin.Context, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.lookupTask(c)
	if !ok {
		return
	}
	s.setStatus(task, status)
	c.JSON(http.StatusOK, task)
}

func (s *Server) addNote(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.lookupTask(c)
	if !ok {
		return
	}
	s.nextNoteID++
	task.Notes = append(task.Notes, model.Note{
		ID:          s.nextNoteID,
		TaskID:      task.ID,
		Content:     body.Content,
		CreatedAt:   model.NewTimestamp(s.now()),
		Attachments: []model.Attachment{},
	})
	c.JSON(http.StatusOK, task)
}

func (s *Server) updateNote(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.lookupNote(c)
	if !ok {
		return
	}
	note.Content = body.Content
	c.JSON(http.StatusOK, note)
}

func (s *Server) deleteNote(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	noteID, ok := idParam(c)
	if !ok {
		return
	}
	for _, task := range s.tasks {
		for i, note := range task.Notes {
			if note.ID != noteID {
				continue
			}
			for _, attachment := range note.Attachments {
				delete(s.files, attachment.ID)
			}
			task.Notes = append(task.Notes[:i], task.Notes[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Note not found"})
}

func (s *Server) uploadAttachment(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	contentType := header.Header.Get("Content-Type")
	fileType := ""
	switch contentType {
	case "application/pdf":
		fileType = "pdf"
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		fileType = "image"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only PDF and image files (JPEG, PNG, GIF, WebP) are allowed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.lookupNote(c)
	if !ok {
		return
	}
	s.nextAttachmentID++
	attachment := model.Attachment{
		ID:        s.nextAttachmentID,
		NoteID:    note.ID,
		Filename:  header.Filename,
		FileType:  fileType,
		FileSize:  int64(len(payload)),
		CreatedAt: model.NewTimestamp(s.now()),
	}
	note.Attachments = append(note.Attachments, attachment)
	s.files[attachment.ID] = payload
	c.JSON(http.StatusOK, attachment)
}

func (s *Server) downloadAttachment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attachmentID, ok := idParam(c)
	if !ok {
		return
	}
	payload, ok := s.files[attachmentID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Attachment not found"})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", payload)
}

func (s *Server) deleteAttachment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attachmentID, ok := idParam(c)
	if !ok {
		return
	}
	for _, task := range s.tasks {
		for n := range task.Notes {
			note := &task.Notes[n]
			for i, attachment := range note.Attachments {
				if attachment.ID != attachmentID {
					continue
				}
				note.Attachments = append(note.Attachments[:i], note.Attachments[i+1:]...)
				delete(s.files, attachmentID)
				c.Status(http.StatusNoContent)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Attachment not found"})
}

func (s *Server) insertTask(input model.TaskInput) model.Task {
	s.nextTaskID++
	user, _ := s.user(input.AssignedTo)
	task := &model.Task{
		ID:           s.nextTaskID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       model.StatusPending,
		AssignedTo:   input.AssignedTo,
		AssignedBy:   input.AssignedBy,
		AssignedUser: user,
		CreatedAt:    model.NewTimestamp(s.now()),
		Notes:        []model.Note{},
	}
	s.tasks[task.ID] = task
	return *task
}

func (s *Server) setStatus(task *model.Task, status string) {
	task.Status = status
	if status == model.StatusCompleted {
		completed := model.NewTimestamp(s.now())
		task.CompletedAt = &completed
		return
	}
	task.CompletedAt = nil
}

// filtered returns matching tasks newest first.
func (s *Server) filtered(keep func(*model.Task) bool) []model.Task {
	result := []model.Task{}
	for _, task := range s.tasks {
		if keep(task) {
			result = append(result, *task)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result
}

func (s *Server) user(userID int64) (model.User, bool) {
	for _, user := range s.users {
		if user.ID == userID {
			return user, true
		}
	}
	return model.User{}, false
}

func (s *Server) lookupTask(c *gin.Context) (*model.Task, bool) {
	taskID, ok := idParam(c)
	if !ok {
		return nil, false
	}
	task, ok := s.tasks[taskID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return nil, false
	}
	return task, true
}

func (s *Server) lookupNote(c *gin.Context) (*model.Note, bool) {
	noteID, ok := idParam(c)
	if !ok {
		return nil, false
	}
	for _, task := range s.tasks {
		for i := range task.Notes {
			if task.Notes[i].ID == noteID {
				return &task.Notes[i], true
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Note not found"})
	return nil, false
}

func idParam(c *gin.Context) (int64, bool) {
	value := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("invalid id %q", value)})
		return 0, false
	}
	return id, true
}
