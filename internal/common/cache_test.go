package common

import (
	"testing"
	"time"
)

type cachedThing struct {
	Name  string
	Count int
}

func TestCacheService_GetFillsDestination(t *testing.T) {
	cs := NewCacheService(60, 600)
	cs.Set("thing", &cachedThing{Name: "pad-7", Count: 3}, time.Minute)

	var got cachedThing
	if !cs.Get("thing", &got) {
		t.Fatal("Get reported a miss for a key that was just set")
	}
	if got.Name != "pad-7" || got.Count != 3 {
		t.Errorf("got %+v, want the stored value", got)
	}
}

func TestCacheService_TypeMismatchIsMiss(t *testing.T) {
	cs := NewCacheService(60, 600)
	cs.Set("thing", "just a string", time.Minute)

	var got cachedThing
	if cs.Get("thing", &got) {
		t.Error("a value of the wrong type must read as a miss")
	}
}

func TestCacheService_DeleteEvicts(t *testing.T) {
	cs := NewCacheService(60, 600)
	cs.Set("thing", &cachedThing{Name: "gone"}, time.Minute)
	cs.Delete("thing")

	var got cachedThing
	if cs.Get("thing", &got) {
		t.Error("Get returned a value after Delete")
	}
}
