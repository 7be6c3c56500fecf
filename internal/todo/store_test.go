package todo

import (
	"testing"

	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	m, err := storage.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })

	s := NewStore(m)
	if err := s.Fetch(); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	return s
}

func TestAddAndCounts(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(&models.CreateTodoRequest{Title: "写日报", Color: "#3B82F6"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(&models.CreateTodoRequest{Title: "遛狗", Color: "#22C55E"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	counts := s.Counts()
	if counts.Total != 2 || counts.Pending != 2 || counts.Completed != 0 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestToggleCompleteMovesBetweenViews(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Add(&models.CreateTodoRequest{Title: "交房租", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	toggled, err := s.ToggleComplete(created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !toggled.Completed {
		t.Error("todo not completed after toggle")
	}

	if got := s.Pending(); len(got) != 0 {
		t.Errorf("pending = %+v, want empty", got)
	}
	completed := s.Completed()
	if len(completed) != 1 || completed[0].ID != created.ID {
		t.Errorf("completed = %+v", completed)
	}

	// 再切换一次回到未完成
	if _, err := s.ToggleComplete(created.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if got := s.Pending(); len(got) != 1 {
		t.Errorf("pending after toggle back = %+v", got)
	}
}

func TestPendingOrder(t *testing.T) {
	s := newTestStore(t)

	var ids []int64
	for _, title := range []string{"一", "二", "三"} {
		created, err := s.Add(&models.CreateTodoRequest{Title: title, Color: "#3B82F6"})
		if err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
		ids = append(ids, created.ID)
	}

	// 重排为 三, 一, 二
	if err := s.Reorder([]int64{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	pending := s.Pending()
	if len(pending) != 3 {
		t.Fatalf("pending len = %d", len(pending))
	}
	if pending[0].Title != "三" || pending[1].Title != "一" || pending[2].Title != "二" {
		t.Errorf("order = %s, %s, %s", pending[0].Title, pending[1].Title, pending[2].Title)
	}
	// 重排后排序值应为连续位置索引
	for i, todo := range pending {
		if todo.SortOrder != i {
			t.Errorf("sort_order[%d] = %d, want %d", i, todo.SortOrder, i)
		}
	}
}

func TestSubTaskLifecycle(t *testing.T) {
	s := newTestStore(t)

	todo, err := s.Add(&models.CreateTodoRequest{Title: "搬家", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	sub, err := s.AddSubTask(&models.CreateSubTaskRequest{ParentID: todo.ID, Title: "打包"})
	if err != nil {
		t.Fatalf("AddSubTask: %v", err)
	}

	all := s.All()
	if len(all) != 1 || len(all[0].Subtasks) != 1 {
		t.Fatalf("mirror missing subtask: %+v", all)
	}

	toggled, err := s.ToggleSubTask(sub.ID)
	if err != nil {
		t.Fatalf("ToggleSubTask: %v", err)
	}
	if !toggled.Completed {
		t.Error("subtask not completed after toggle")
	}

	if err := s.DeleteSubTask(sub.ID); err != nil {
		t.Fatalf("DeleteSubTask: %v", err)
	}
	if all := s.All(); len(all[0].Subtasks) != 0 {
		t.Errorf("subtask not removed from mirror: %+v", all[0].Subtasks)
	}
}

func TestSubscribeNotifiedOnChange(t *testing.T) {
	s := newTestStore(t)

	var notifications int
	s.Subscribe(func() { notifications++ })

	if _, err := s.Add(&models.CreateTodoRequest{Title: "浇花", Color: "#3B82F6"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if notifications == 0 {
		t.Error("subscriber not notified after Add")
	}

	before := notifications
	if err := s.Fetch(); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if notifications != before+1 {
		t.Errorf("notifications = %d, want %d", notifications, before+1)
	}
}

func TestDeleteRemovesFromMirror(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Add(&models.CreateTodoRequest{Title: "还书", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := s.All(); len(got) != 0 {
		t.Errorf("mirror = %+v, want empty", got)
	}

	if _, err := s.ToggleComplete(created.ID); err == nil {
		t.Error("ToggleComplete on deleted todo should fail")
	}
}
