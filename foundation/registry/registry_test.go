package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ardanlabs/voteledger/foundation/registry"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestRegister(t *testing.T) {
	t.Log("Given the need to accept a subject only once.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen registering the same subject twice.", testID)
		{
			r := registry.New()

			if !r.Register("V1") {
				t.Fatalf("\t%s\tTest %d:\tShould register a new subject.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould register a new subject.", success, testID)

			if r.Register("V1") {
				t.Fatalf("\t%s\tTest %d:\tShould reject a used subject.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a used subject.", success, testID)

			if !r.Contains("V1") || r.Contains("V2") || r.Len() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report membership.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report membership.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen registering concurrently.", testID)
		{
			r := registry.New()

			const goroutines = 50
			var wg sync.WaitGroup
			var mu sync.Mutex
			var accepted int

			wg.Add(goroutines)
			for i := 0; i < goroutines; i++ {
				i := i
				go func() {
					defer wg.Done()
					if r.Register(fmt.Sprintf("V%d", i%10)) {
						mu.Lock()
						accepted++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			if accepted != 10 || r.Len() != 10 {
				t.Fatalf("\t%s\tTest %d:\tShould accept each subject once: got %d", failed, testID, accepted)
			}
			t.Logf("\t%s\tTest %d:\tShould accept each subject once.", success, testID)
		}
	}
}
