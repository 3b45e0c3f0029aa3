// Package closer обеспечивает потокобезопасное закрытие ресурсов приложения
// в порядке LIFO при остановке сервиса.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer накапливает функции закрытия и запускает их при остановке.
type Closer struct {
	mu    sync.Mutex
	once  sync.Once
	funcs []Func
}

func New() *Closer {
	return &Closer{}
}

// Add добавляет функцию в список закрытия
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close запускает закрытие всех зарегистрированных функций (LIFO).
// Закрытие прерывается при отмене контекста; ошибки отдельных функций
// накапливаются и возвращаются одной ошибкой.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		c.mu.Unlock()

		var msgs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			select {
			case <-ctx.Done():
				msgs = append(msgs, fmt.Sprintf("[!] shutdown interrupted: %d resource(s) left open", i+1))
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(msgs, "\n"))
				return
			default:
			}

			if closeErr := funcs[i](ctx); closeErr != nil {
				msgs = append(msgs, fmt.Sprintf("[!] %v", closeErr))
			}
		}

		if len(msgs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(msgs, "\n"))
		}
	})

	return err
}
