package progressbar

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	p := New(&bytes.Buffer{}, 4, 8)
	assert.Equal(t, "|    | [0.00%]", p.String())

	for i := 0; i < 4; i++ {
		p.Increment()
	}
	assert.Equal(t, "|██  | [50.00%]", p.String())
}

func TestConcurrentIncrementSaturates(t *testing.T) {
	p := New(&bytes.Buffer{}, 10, 100)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				p.Increment()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1.0, p.Progress())
}

func TestDisplay(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 2, 2)
	p.Increment()
	p.Display()
	p.Close()

	assert.True(t, strings.HasPrefix(out.String(), "\r\033[K|█ | [50.00%]"))
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	assert.Panics(t, func() { New(&out, 0, 1) })
}
