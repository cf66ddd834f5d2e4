package chat

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeDeliversAfterDelay(t *testing.T) {
	var delivered atomic.Int32
	ex := NewExchange(NewMatcher(nil), 20*time.Millisecond, func(Message) { delivered.Add(1) })
	defer ex.Close()

	require.True(t, ex.Send("How much does it cost to rent?"))

	msgs := ex.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Message{Origin: User, Text: "How much does it cost to rent?"}, msgs[0])
	assert.True(t, ex.Typing())

	require.Eventually(t, func() bool { return delivered.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, ex.Typing())

	msgs = ex.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Assistant, msgs[1].Origin)
	assert.Equal(t, Table["pricing"]["structure"], msgs[1].Text)
}

func TestExchangeIgnoresBlankInput(t *testing.T) {
	ex := NewExchange(NewMatcher(nil), time.Millisecond, nil)
	defer ex.Close()
	assert.False(t, ex.Send("   "))
	assert.Empty(t, ex.Messages())
	assert.False(t, ex.Typing())
}

func TestExchangeOpenGreetsOnce(t *testing.T) {
	ex := NewExchange(NewMatcher(func(int) int { return 1 }), 0, nil)
	defer ex.Close()

	ex.Open()
	require.Eventually(t, func() bool { return len(ex.Messages()) == 1 }, time.Second, time.Millisecond)
	ex.Open()
	time.Sleep(10 * time.Millisecond)

	msgs := ex.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Message{Origin: Assistant, Text: Greetings[1]}, msgs[0])
}

func TestExchangeConcurrentOpenGreetsOnce(t *testing.T) {
	ex := NewExchange(NewMatcher(func(int) int { return 0 }), 5*time.Millisecond, nil)
	defer ex.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ex.Open()
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return !ex.Typing() }, time.Second, time.Millisecond)
	assert.Equal(t, []Message{{Origin: Assistant, Text: Greetings[0]}}, ex.Messages())
}

func TestExchangeKeepsOrderAcrossSends(t *testing.T) {
	ex := NewExchange(NewMatcher(nil), 5*time.Millisecond, nil)
	defer ex.Close()

	ex.Send("asdkjasd")
	require.Eventually(t, func() bool { return !ex.Typing() }, time.Second, time.Millisecond)
	ex.Send("where are you")
	require.Eventually(t, func() bool { return !ex.Typing() }, time.Second, time.Millisecond)

	msgs := ex.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []Origin{User, Assistant, User, Assistant},
		[]Origin{msgs[0].Origin, msgs[1].Origin, msgs[2].Origin, msgs[3].Origin})
	assert.Equal(t, Fallback, msgs[1].Text)
	assert.Equal(t, Table["location"]["stores"], msgs[3].Text)
}

func TestExchangeCloseDiscardsPending(t *testing.T) {
	var delivered atomic.Int32
	ex := NewExchange(NewMatcher(nil), 50*time.Millisecond, func(Message) { delivered.Add(1) })

	ex.Send("help")
	ex.Close()
	assert.False(t, ex.Typing())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), delivered.Load())
	assert.Len(t, ex.Messages(), 1)
	assert.False(t, ex.Send("hello again"))
}
