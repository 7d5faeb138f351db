package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrTurnInProgress = errors.New("previous message is still awaiting a reply")
)

// ReplySource where a subject message came from
type ReplySource string

const (
	SourceRemote   ReplySource = "remote"
	SourceFallback ReplySource = "fallback"
)

// ChatUseCase the conversation surface presentation layers talk to
type ChatUseCase interface {
	Submit(ctx context.Context, text string) (*Turn, error)
	Messages(ctx context.Context) ([]entity.Message, error)
	AwaitingResponse() bool
	Snapshot(ctx context.Context) (entity.Snapshot, error)
	Subscribe() (<-chan entity.Snapshot, func())
	Greeting() string
}

// Turn one visitor message and, once resolved, its reply
type Turn struct {
	visitor entity.Message
	done    chan struct{}

	reply  entity.Message
	source ReplySource
	err    error
}

// Visitor the message that started the turn
func (t *Turn) Visitor() entity.Message {
	return t.visitor
}

// Done closed once the reply has been appended
func (t *Turn) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the reply is appended or ctx ends. A ctx ending only stops
// the wait; the reply is still appended to the conversation. When the reply
// cannot be saved the error is returned and the conversation stays awaiting.
func (t *Turn) Wait(ctx context.Context) (entity.Message, error) {
	select {
	case <-t.done:
		return t.reply, t.err
	case <-ctx.Done():
		return entity.Message{}, ctx.Err()
	}
}

// Reply the subject message, zero value until Done
func (t *Turn) Reply() entity.Message {
	select {
	case <-t.done:
		return t.reply
	default:
		return entity.Message{}
	}
}

// Source remote or fallback, valid after Done
func (t *Turn) Source() ReplySource {
	select {
	case <-t.done:
		return t.source
	default:
		return ""
	}
}

type completionResult struct {
	text string
	err  error
}

// Conversation owns the message log and the awaiting-response flag.
// At most one turn is outstanding; Submit during a turn is rejected.
type Conversation struct {
	aiRepo   repository.CompletionRepository
	chatRepo repository.ConversationRepository
	prompts  *PromptBuilder
	fallback *FallbackClassifier
	greeting string
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	awaiting bool
	seq      int64

	subMu  sync.Mutex
	subs   map[int]chan entity.Snapshot
	nextID int

	wg sync.WaitGroup
}

// NewChatUseCase wires the orchestrator. aiRepo may be nil, every turn then
// uses the fallback classifier.
func NewChatUseCase(
	aiRepo repository.CompletionRepository,
	chatRepo repository.ConversationRepository,
	kb *entity.KnowledgeBase,
	logger *zap.Logger,
) (*Conversation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Conversation{
		aiRepo:   aiRepo,
		chatRepo: chatRepo,
		prompts:  NewPromptBuilder(kb),
		fallback: NewFallbackClassifier(kb),
		greeting: kb.Profile().Greeting,
		logger:   logger,
		now:      time.Now,
		subs:     make(map[int]chan entity.Snapshot),
	}

	ctx := context.Background()
	last, ok, err := chatRepo.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}
	if ok {
		if last.IsVisitor() {
			return nil, fmt.Errorf("conversation ends with unanswered message %s", last.ID)
		}
		c.seq = last.Seq
	}

	n, err := chatRepo.Len(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}
	if n == 0 && strings.TrimSpace(c.greeting) != "" {
		if err := chatRepo.Append(ctx, c.newMessage(c.greeting, entity.OriginSubject)); err != nil {
			return nil, fmt.Errorf("failed to seed greeting: %w", err)
		}
	}

	return c, nil
}

// Submit appends the visitor message and starts resolving the reply.
// Empty input and input arriving while a reply is pending change nothing.
func (c *Conversation) Submit(ctx context.Context, text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		return nil, ErrTurnInProgress
	}

	visitor := c.newMessage(text, entity.OriginVisitor)
	if err := c.chatRepo.Append(ctx, visitor); err != nil {
		c.seq--
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	c.awaiting = true
	c.publishLocked(ctx)
	c.mu.Unlock()

	c.logger.Debug("visitor message accepted", zap.String("id", visitor.ID), zap.Int64("seq", visitor.Seq))

	turn := &Turn{visitor: visitor, done: make(chan struct{})}

	c.wg.Add(1)
	go c.resolve(context.WithoutCancel(ctx), turn)

	return turn, nil
}

// resolve single handler of a completion outcome
func (c *Conversation) resolve(ctx context.Context, turn *Turn) {
	defer c.wg.Done()

	text := turn.visitor.Text
	result := c.complete(ctx, text)

	reply, source := strings.TrimSpace(result.text), SourceRemote
	switch {
	case errors.Is(result.err, repository.ErrRemoteUnavailable):
		c.logger.Debug("remote model not configured, using fallback")
		reply, source = c.fallback.Classify(text), SourceFallback
	case result.err != nil:
		c.logger.Warn("remote completion failed, using fallback", zap.Error(result.err))
		reply, source = c.fallback.Classify(text), SourceFallback
	case reply == "":
		c.logger.Warn("remote completion returned empty text, using fallback")
		reply, source = c.fallback.Classify(text), SourceFallback
	}

	c.mu.Lock()
	msg := c.newMessage(reply, entity.OriginSubject)
	err := c.chatRepo.Append(ctx, msg)
	if err != nil {
		// the visitor message stays unanswered, so no further turn may start
		c.seq--
		c.logger.Error("failed to save reply, conversation stays awaiting", zap.Error(err))
	} else {
		c.awaiting = false
	}
	c.publishLocked(ctx)
	c.mu.Unlock()

	turn.reply, turn.source, turn.err = msg, source, err
	close(turn.done)

	c.logger.Info("turn resolved",
		zap.String("source", string(source)),
		zap.String("intent", c.fallback.Match(text).String()),
		zap.Int64("seq", msg.Seq))
}

// complete calls the remote model. Panics are turned into ErrRemoteCallFailed.
func (c *Conversation) complete(ctx context.Context, text string) (res completionResult) {
	if c.aiRepo == nil {
		return completionResult{err: repository.ErrRemoteUnavailable}
	}

	defer func() {
		if r := recover(); r != nil {
			res = completionResult{err: fmt.Errorf("%w: panic: %v", repository.ErrRemoteCallFailed, r)}
		}
	}()

	out, err := c.aiRepo.Complete(ctx, c.prompts.BuildSystemPrompt(), text)
	return completionResult{text: out, err: err}
}

// newMessage must be called with mu held (or before the conversation is shared)
func (c *Conversation) newMessage(text string, origin entity.Origin) entity.Message {
	c.seq++
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return entity.Message{
		ID:        id.String(),
		Seq:       c.seq,
		Text:      text,
		Origin:    origin,
		CreatedAt: c.now(),
	}
}

// Messages copy of the log
func (c *Conversation) Messages(ctx context.Context) ([]entity.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatRepo.Messages(ctx)
}

// AwaitingResponse true while a visitor message has no reply yet
func (c *Conversation) AwaitingResponse() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Snapshot consistent messages + flag pair
func (c *Conversation) Snapshot(ctx context.Context) (entity.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(ctx)
}

func (c *Conversation) snapshotLocked(ctx context.Context) (entity.Snapshot, error) {
	msgs, err := c.chatRepo.Messages(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}
	return entity.Snapshot{Messages: msgs, AwaitingResponse: c.awaiting}, nil
}

// Greeting opening line of the subject, may be empty
func (c *Conversation) Greeting() string {
	return c.greeting
}

// SystemPrompt prompt sent with every remote request
func (c *Conversation) SystemPrompt() string {
	return c.prompts.BuildSystemPrompt()
}

// Subscribe delivers a snapshot after every change. Slow readers only see the
// latest snapshot. Call the returned func to unsubscribe.
func (c *Conversation) Subscribe() (<-chan entity.Snapshot, func()) {
	ch := make(chan entity.Snapshot, 1)

	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			close(ch)
			c.subMu.Unlock()
		})
	}
}

// publishLocked must be called with mu held so subscribers see changes in order
func (c *Conversation) publishLocked(ctx context.Context) {
	snap, err := c.snapshotLocked(ctx)
	if err != nil {
		c.logger.Error("failed to build snapshot", zap.Error(err))
		return
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close waits for an in-flight reply. When ctx ends first the pending reply is
// left to finish in the background and Close returns ctx.Err().
func (c *Conversation) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
