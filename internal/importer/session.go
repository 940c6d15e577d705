package importer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"netinv/internal/model"
	"netinv/internal/parser"
)

// ErrSessionExpired 会话不存在或已过期
var ErrSessionExpired = errors.New("session not found or expired")

// SessionState 会话状态
type SessionState string

const (
	StateConfigure SessionState = "configure" // 解析成功后进入配置
	StatePreview   SessionState = "preview"   // 预览已生成
	StateImporting SessionState = "importing" // 批量提交中
	StateComplete  SessionState = "complete"  // 提交结束（允许部分失败）
)

// allowedTransitions 状态机允许的迁移
var allowedTransitions = map[SessionState][]SessionState{
	StateConfigure: {StatePreview},
	StatePreview:   {StateImporting, StatePreview, StateConfigure},
	StateImporting: {StateComplete},
	StateComplete:  {},
}

// Session 一次上传到导入完成的服务端上下文。
// Sheet 内容解析后不可变；配置、预览产物和汇总随阶段推进写入。
// 仅发起请求的流程读写同一会话，不做跨会话共享。
type Session struct {
	ID        string                        `json:"id"`
	ProjectID string                        `json:"projectId"`
	FileName  string                        `json:"fileName"`
	State     SessionState                  `json:"state"`
	Sheets    []parser.SheetDescriptor      `json:"sheets"`
	Configs   map[string]parser.SheetConfig `json:"configs,omitempty"`

	// 预览阶段产物
	Devices []model.Device `json:"devices,omitempty"`

	// IP 修正状态，前缀和位数留着给后续预览重放
	CorrectionApplied    bool   `json:"correctionApplied,omitempty"`
	CorrectionPrefix     string `json:"correctionPrefix,omitempty"`
	CorrectionHostDigits int    `json:"correctionHostDigits,omitempty"`

	// 导入结果
	Summary *model.ImportSummary `json:"summary,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	expiresAt time.Time
}

// Transition 推进会话状态，不允许的迁移返回错误
func (s *Session) Transition(to SessionState) error {
	for _, allowed := range allowedTransitions[s.State] {
		if allowed == to {
			s.State = to
			return nil
		}
	}
	return fmt.Errorf("invalid session transition: %s -> %s", s.State, to)
}

// SessionStore 会话存储，带 TTL 清理
type SessionStore struct {
	mu    sync.Mutex
	items map[string]*Session
	ttl   time.Duration
}

// NewSessionStore 创建会话存储
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		items: make(map[string]*Session),
		ttl:   ttl,
	}
}

// Create 解析成功后创建会话，初始状态为 configure
func (s *SessionStore) Create(projectID, fileName string, sheets []parser.SheetDescriptor) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	session := &Session{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		FileName:  fileName,
		State:     StateConfigure,
		Sheets:    sheets,
		Configs:   make(map[string]parser.SheetConfig),
		CreatedAt: time.Now(),
		expiresAt: time.Now().Add(s.ttl),
	}
	s.items[session.ID] = session
	return session
}

// Get 取会话，不存在或过期返回 ErrSessionExpired
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	session, ok := s.items[id]
	if !ok {
		return nil, ErrSessionExpired
	}
	if time.Now().After(session.expiresAt) {
		delete(s.items, id)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Delete 丢弃会话，已提交的批次不回滚
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Len 当前存活会话数
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(time.Now())
	return len(s.items)
}

func (s *SessionStore) purgeExpiredLocked(now time.Time) {
	for id, session := range s.items {
		if now.After(session.expiresAt) {
			delete(s.items, id)
		}
	}
}
