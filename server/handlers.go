package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ui_mockups/generator"
	"ui_mockups/publisher"
	"ui_mockups/reader"
)

type sessionHandler func(c *gin.Context, sess *generator.Session)

func (s *Server) withSession(h sessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, ok := s.store.get(id)
		if !ok {
			abortWithError(c, fmt.Errorf("%w: %s", errSessionNotFound, id))
			return
		}
		h(c, sess)
	}
}

func (s *Server) callContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
}

type mockupView struct {
	Name    string `json:"name"`
	Screen  string `json:"screen"`
	Index   int    `json:"index"`
	Prompt  string `json:"prompt"`
	DataURL string `json:"data_url,omitempty"`
}

func toViews(items []generator.MockupItem, withData bool) []mockupView {
	views := make([]mockupView, 0, len(items))
	for _, item := range items {
		v := mockupView{Name: item.Name, Screen: item.Result.Screen, Index: item.Result.Index, Prompt: item.Prompt}
		if withData {
			v.DataURL = item.DataURL
		}
		views = append(views, v)
	}
	return views
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"can_plan": s.studio.CanPlan(),
		"sessions": s.store.count(),
	})
}

func (s *Server) handleSessionCreate(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "multipart field \"file\" is required")
		return
	}
	if fh.Size > s.opts.MaxUploadBytes {
		badRequest(c, fmt.Sprintf("file too large: %d bytes, limit %d", fh.Size, s.opts.MaxUploadBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot open uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.opts.MaxUploadBytes))
	if err != nil {
		badRequest(c, "cannot read uploaded file")
		return
	}

	text, err := reader.Extract(fh.Filename, data)
	if err != nil {
		// 解析失败按空文本处理，session 仍然创建
		s.logger.Warn("Document could not be read", zap.String("filename", fh.Filename), zap.Error(err))
		text = ""
	}

	sess := generator.NewSession(uuid.NewString(), fh.Filename, text)
	s.store.set(sess)
	s.logger.Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("filename", fh.Filename),
		zap.Int("chars", len([]rune(text))))

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"filename":   sess.Filename,
		"preview":    reader.Preview(text),
		"chars":      len([]rune(text)),
		"can_plan":   s.studio.CanPlan(),
	})
}

func (s *Server) handleSessionGet(c *gin.Context, sess *generator.Session) {
	c.JSON(http.StatusOK, sessionBody(sess))
}

func sessionBody(sess *generator.Session) gin.H {
	body := gin.H{
		"session_id": sess.ID,
		"filename":   sess.Filename,
		"plan":       nil,
		"mockups":    toViews(sess.Mockups(), false),
	}
	if plan, ok := sess.Plan(); ok {
		body["plan"] = plan
	}
	return body
}

func (s *Server) handlePlan(c *gin.Context, sess *generator.Session) {
	ctx, cancel := s.callContext(c)
	defer cancel()

	plan, err := s.studio.PlanSession(ctx, sess)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sess.ID, "plan": plan})
}

// handlePlanEdit 接收编辑后的方案 JSON；解析失败时保留原方案，applied=false。
func (s *Server) handlePlanEdit(c *gin.Context, sess *generator.Session) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "cannot read request body")
		return
	}
	applied := sess.ApplyPlanEdit(string(raw))
	if !applied {
		s.logger.Info("Plan edit rejected, keeping previous plan", zap.String("session_id", sess.ID))
	}
	body := gin.H{"applied": applied, "plan": nil}
	if plan, ok := sess.Plan(); ok {
		body["plan"] = plan
	}
	c.JSON(http.StatusOK, body)
}

type generateReq struct {
	Platform        string `json:"platform"`
	ImagesPerScreen int    `json:"images_per_screen"`
	Size            string `json:"size"`
}

func (s *Server) handleGenerate(c *gin.Context, sess *generator.Session) {
	var req generateReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "invalid JSON body: "+err.Error())
			return
		}
	}
	opts := generator.GenerateOptions{
		Platform:   req.Platform,
		NPerScreen: req.ImagesPerScreen,
		Size:       req.Size,
	}.WithDefaults()
	if err := opts.Validate(); err != nil {
		abortWithError(c, err)
		return
	}

	ctx, cancel := s.callContext(c)
	defer cancel()
	items, err := s.studio.GenerateSession(ctx, sess, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sess.ID, "mockups": toViews(items, true)})
}

func (s *Server) handleCheck(c *gin.Context, sess *generator.Session) {
	ctx, cancel := s.callContext(c)
	defer cancel()

	name := c.Param("name")
	report, err := s.studio.CheckMockup(ctx, sess, name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "report": report})
}

func (s *Server) handleBundle(c *gin.Context, sess *generator.Session) {
	data, err := publisher.BuildBundle(sess.Mockups()).JSON()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleReport(c *gin.Context, sess *generator.Session) {
	title := "UI Mockups"
	if sess.Filename != "" {
		title = "UI Mockups: " + sess.Filename
	}
	md := publisher.BuildReport(title, sess.Mockups(), sess.Checks())
	if c.Query("format") == "md" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	page, err := publisher.RenderReportHTML(title, md)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
