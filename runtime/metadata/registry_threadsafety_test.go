package metadata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentResolution shares one registry, extractor cache and collection
// across goroutines. Run with -race.
func TestConcurrentResolution(t *testing.T) {
	types := newStubRegistry(t)
	lruCache, err := NewLRUCache(4)
	require.NoError(t, err)

	for name, cache := range map[string]Cache{"memory": NewMemoryCache(), "lru": lruCache} {
		t.Run(name, func(t *testing.T) {
			reader := NewReader(NewExtractor(types, cache, nil))
			shared, err := reader.Collection(extendedClass, []*Kind{ForWorkflow})
			require.NoError(t, err)

			const workers = 16
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			counts := make(chan int, workers*2)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()

					typeName := extendedClass
					if i%2 == 1 {
						typeName = childInterface
					}
					attrs, err := reader.Collection(typeName, []*Kind{TaskQueueKind, RetryPolicyKind})
					if err != nil {
						errs <- err
						return
					}
					counts <- attrs.Count(TaskQueueKind)

					// Lazy indexing on a shared collection
					counts <- shared.Count(TaskQueueKind)
				}(i)
			}

			wg.Wait()
			close(errs)
			close(counts)

			for err := range errs {
				t.Errorf("resolution failed: %v", err)
			}
			for c := range counts {
				assert.Contains(t, []int{3, 5}, c)
			}
		})
	}
}

func TestConcurrentRegistrationAndLookup(t *testing.T) {
	types := NewTypeRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = types.Register(TypeDecl{Name: string(rune('A' + i)), Kind: Class})
		}(i)
		go func() {
			defer wg.Done()
			_ = types.Names()
			_, _ = types.Lookup("A")
		}()
	}

	wg.Wait()
	assert.Equal(t, 8, types.Len())
	assert.NoError(t, types.Validate())
}
