package core

import (
	"context"
	"recruitledger/pkg/domain"
	"strings"
)

// CreateTask persists a task for any person.
func (s *Service) CreateTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	task := domain.Task{
		Base:        s.newBase(),
		PersonID:    in.PersonID,
		Status:      in.Status,
		DueDate:     clonePtr(in.DueDate),
		Description: strings.TrimSpace(in.Description),
	}
	err := s.mutate(ctx, "CreateTask", func(tx domain.Transaction) error {
		return writeTask(ctx, tx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func writeTask(ctx context.Context, tx domain.Transaction, task domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if _, err := requirePerson(ctx, tx, domain.CollectionTasks, "person_id", task.PersonID, ""); err != nil {
		return err
	}
	return put(ctx, tx, domain.CollectionTasks, task)
}

// GetTask returns the task with id.
func (s *Service) GetTask(ctx context.Context, id string) (domain.Task, bool, error) {
	var (
		task domain.Task
		ok   bool
	)
	err := s.read(ctx, "GetTask", func(r domain.Reader) error {
		var err error
		task, ok, err = load[domain.Task](ctx, r, domain.CollectionTasks, id)
		return err
	})
	return task, ok, err
}

// ListTasks returns every task, dated tasks first by due date.
func (s *Service) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.read(ctx, "ListTasks", func(r domain.Reader) error {
		var err error
		tasks, err = loadAll[domain.Task](ctx, r, domain.CollectionTasks)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortTasks(tasks)
	return tasks, nil
}

// ListTasksByPerson returns the tasks of one person.
func (s *Service) ListTasksByPerson(ctx context.Context, personID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.read(ctx, "ListTasksByPerson", func(r domain.Reader) error {
		var err error
		tasks, err = loadByIndex[domain.Task](ctx, r, domain.CollectionTasks, domain.IndexPersonID, personID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortTasks(tasks)
	return tasks, nil
}

// UpdateTask applies patch to the task with id.
func (s *Service) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, bool, error) {
	var (
		task  domain.Task
		found bool
	)
	err := s.mutate(ctx, "UpdateTask", func(tx domain.Transaction) error {
		var err error
		task, found, err = load[domain.Task](ctx, tx, domain.CollectionTasks, id)
		if err != nil || !found {
			return err
		}
		if err := applyRequired(domain.CollectionTasks, "person_id", patch.PersonID, &task.PersonID); err != nil {
			return err
		}
		if err := applyRequired(domain.CollectionTasks, "status", patch.Status, &task.Status); err != nil {
			return err
		}
		if err := applyRequired(domain.CollectionTasks, "description", patch.Description, &task.Description); err != nil {
			return err
		}
		task.Description = strings.TrimSpace(task.Description)
		patch.DueDate.ApplyToPtr(&task.DueDate)
		s.touch(&task.Base)
		return writeTask(ctx, tx, task)
	})
	if err != nil || !found {
		return domain.Task{}, false, err
	}
	return task, true, nil
}

// DeleteTask removes the task with id.
func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeleteTask", func(tx domain.Transaction) error {
		var err error
		_, found, err = tx.Get(ctx, domain.CollectionTasks, id)
		if err != nil || !found {
			return err
		}
		return tx.Delete(ctx, domain.CollectionTasks, id)
	})
	return found, err
}
