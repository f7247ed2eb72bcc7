package reactor

import (
	"context"
	"sync"
	"time"
)

// dispatchTimeout 为单次 dispatch 内全部外部调用的兜底超时
const dispatchTimeout = 10 * time.Second

// MutateFunc 把 Action 解析为零或多条 Mutation。所有副作用只发生在这里，
// 失败必须转成 setError 类的 Mutation 发出，绝不让错误逃逸。
type MutateFunc[A, M any] func(ctx context.Context, action A, emit func(M))

// ReduceFunc 为纯函数，把一条 Mutation 折叠进状态
type ReduceFunc[S, M any] func(state S, mutation M) S

// Container 为单向数据流状态容器：Dispatch(Action) → MutateFunc 产出
// 有序 Mutation → 单一 apply 循环按到达顺序经 ReduceFunc 折叠 → 新状态
// 广播给所有订阅者。容器自构造起就持有合法状态，CurrentState 随时可读。
type Container[A, M, S any] struct {
	mutate MutateFunc[A, M]
	reduce ReduceFunc[S, M]

	mu    sync.RWMutex
	state S

	mutations chan M
	done      chan struct{}
	closeOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]chan S
	nextSub int
}

// NewContainer 创建容器并启动 apply 循环
func NewContainer[A, M, S any](initial S, mutate MutateFunc[A, M], reduce ReduceFunc[S, M]) *Container[A, M, S] {
	c := &Container[A, M, S]{
		mutate:    mutate,
		reduce:    reduce,
		state:     initial,
		mutations: make(chan M, 16),
		done:      make(chan struct{}),
		subs:      make(map[int]chan S),
	}
	go c.run()
	return c
}

func (c *Container[A, M, S]) run() {
	for {
		select {
		case m := <-c.mutations:
			c.mu.Lock()
			c.state = c.reduce(c.state, m)
			s := c.state
			c.mu.Unlock()
			c.broadcast(s)
		case <-c.done:
			return
		}
	}
}

// Dispatch 触发一次动作，对调用方即发即忘。每次 dispatch 的解析在
// 独立 goroutine 中运行，携带兜底超时的 context。
func (c *Container[A, M, S]) Dispatch(action A) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		c.mutate(ctx, action, c.emit)
	}()
}

func (c *Container[A, M, S]) emit(m M) {
	select {
	case c.mutations <- m:
	case <-c.done:
	}
}

// CurrentState 返回当前状态快照
func (c *Container[A, M, S]) CurrentState() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe 订阅状态变更。订阅立即收到最新状态（replay-last）；
// 通道容量为一且只保留最新值，慢消费者只会丢中间态不丢最终态。
// 返回的取消函数用于退订。
func (c *Container[A, M, S]) Subscribe() (<-chan S, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	ch := make(chan S, 1)
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	push(ch, c.CurrentState())

	cancel := func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
	return ch, cancel
}

func (c *Container[A, M, S]) broadcast(s S) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		push(ch, s)
	}
}

// push 向容量为一的通道做保留最新值的写入，只在持有 subMu 时调用
func push[S any](ch chan S, s S) {
	for {
		select {
		case ch <- s:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Close 停止 apply 循环。之后的 Dispatch 不再改变状态。
func (c *Container[A, M, S]) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}
