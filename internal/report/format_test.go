package report

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func TestTypeLabel(t *testing.T) {
	cases := map[int]string{
		1: "individual",
		2: "group",
		3: "self",
		0: "0",
		4: "4",
		9: "9",
	}
	for code, want := range cases {
		if got := typeLabel(code, keyTranslator{}); got != want {
			t.Fatalf("typeLabel(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(1700000000, time.UTC); got != "14/11/2023 10:13:20" {
		t.Fatalf("UTC = %q", got)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if got := formatTime(1700000000, tokyo); got != "15/11/2023 07:13:20" {
		t.Fatalf("JST = %q", got)
	}

	if got := formatNullTime(sql.NullInt64{}, time.UTC); got != "" {
		t.Fatalf("null = %q", got)
	}
}

func TestMemberList(t *testing.T) {
	memo := NewUserMemo(newFakeUsers(alice()))
	members := []Member{{UserID: 7}, {UserID: 9}}

	got, err := memberList(context.Background(), members, memo, keyTranslator{})
	if err != nil {
		t.Fatal(err)
	}
	want := `<a href="/user/view.php?id=7">Alice Smith</a>, <a href="/user/view.php?id=9">User not found</a>`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestMemberListSingleAndEmpty(t *testing.T) {
	memo := NewUserMemo(newFakeUsers(alice()))

	got, err := memberList(context.Background(), []Member{{UserID: 7}}, memo, keyTranslator{})
	if err != nil {
		t.Fatal(err)
	}
	if got != `<a href="/user/view.php?id=7">Alice Smith</a>` {
		t.Fatalf("single = %q", got)
	}

	got, err = memberList(context.Background(), nil, memo, keyTranslator{})
	if err != nil || got != "" {
		t.Fatalf("empty = (%q, %v)", got, err)
	}
}

func TestReportURL(t *testing.T) {
	cases := []struct {
		course, conv *int
		want         string
	}{
		{nil, nil, "/report/conversations"},
		{intPtr(3), nil, "/report/conversations?course=3"},
		{nil, intPtr(5), "/report/conversations?conversation=5"},
		{intPtr(3), intPtr(5), "/report/conversations?conversation=5&course=3"},
	}
	for _, tc := range cases {
		if got := reportURL(tc.course, tc.conv); got != tc.want {
			t.Fatalf("reportURL = %q, want %q", got, tc.want)
		}
	}
}

func TestLinkEscapesHref(t *testing.T) {
	got := link("/report/conversations?conversation=5&course=3", "5")
	want := `<a href="/report/conversations?conversation=5&amp;course=3">5</a>`
	if got != want {
		t.Fatalf("got %s", got)
	}
}
