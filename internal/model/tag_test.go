package model

import "testing"

func TestTagSetEqual(t *testing.T) {
	a := []MonitorTag{
		{Name: strp("AutoKuma"), Value: strp("site")},
		{Name: strp("env"), Value: strp("prod")},
	}
	b := []MonitorTag{
		{Name: strp("env"), Value: strp("prod")},
		{Name: strp("AutoKuma"), Value: strp("site")},
	}
	if !TagSetEqual(a, b) {
		t.Fatal("expected tag sets to be equal regardless of order")
	}

	c := []MonitorTag{{Name: strp("env"), Value: strp("staging")}}
	if TagSetEqual(a, c) {
		t.Fatal("expected different tag sets to not be equal")
	}
}
