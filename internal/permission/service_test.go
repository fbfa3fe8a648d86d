package permission_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/permission"
)

func TestPermissionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Service Suite")
}

type mockPermissionRepository struct {
	permissions []*permission.Permission
	nextID      int
	deleteCalls int
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{nextID: 1}
}

func (m *mockPermissionRepository) FindAll(ctx context.Context) ([]*permission.Permission, error) {
	out := make([]*permission.Permission, len(m.permissions))
	copy(out, m.permissions)
	return out, nil
}

func (m *mockPermissionRepository) FindByID(ctx context.Context, id string) (*permission.Permission, error) {
	for _, p := range m.permissions {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockPermissionRepository) FindOneByCode(ctx context.Context, code string) (*permission.Permission, error) {
	for _, p := range m.permissions {
		if p.Code == code {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockPermissionRepository) Insert(ctx context.Context, p *permission.Permission) (*permission.Permission, error) {
	copied := *p
	copied.ID = fmt.Sprintf("perm-%d", m.nextID)
	m.nextID++
	m.permissions = append(m.permissions, &copied)
	return &copied, nil
}

func (m *mockPermissionRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.deleteCalls++
	for i, p := range m.permissions {
		if p.ID == id {
			m.permissions = append(m.permissions[:i], m.permissions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("PermissionService", func() {
	var (
		service *permission.Service
		repo    *mockPermissionRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockPermissionRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(repo, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should persist a permission with code and description", func() {
			created, err := service.Create(ctx, permission.CreatePermissionDTO{
				Code:        "view_employees",
				Description: "Can view employees",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).ToNot(BeEmpty())
			Expect(created.Code).To(Equal("view_employees"))
			Expect(created.Description).To(Equal("Can view employees"))
			Expect(created.CreatedAt).To(BeTemporally("~", time.Now().UTC(), time.Second))
		})

		It("should reject a duplicate code with a conflict", func() {
			_, err := service.Create(ctx, permission.CreatePermissionDTO{Code: "admin"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(ctx, permission.CreatePermissionDTO{Code: "admin"})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
		})

		It("should reject an empty code", func() {
			_, err := service.Create(ctx, permission.CreatePermissionDTO{Code: ""})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("List", func() {
		It("should return all permissions", func() {
			for _, code := range []string{"admin", "view_employees", "edit_employees"} {
				_, err := service.Create(ctx, permission.CreatePermissionDTO{Code: code})
				Expect(err).ToNot(HaveOccurred())
			}

			all, err := service.List(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(3))
		})

		It("should return an empty slice when nothing is stored", func() {
			all, err := service.List(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("should return nil for an empty id", func() {
			p, err := service.GetByID(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(BeNil())
		})

		It("should return nil for an unknown id", func() {
			p, err := service.GetByID(ctx, "missing")

			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(BeNil())
		})

		It("should round-trip a created permission", func() {
			created, err := service.Create(ctx, permission.CreatePermissionDTO{Code: "admin"})
			Expect(err).ToNot(HaveOccurred())

			fetched, err := service.GetByID(ctx, created.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(fetched).ToNot(BeNil())
			Expect(fetched.Code).To(Equal("admin"))
		})
	})

	Describe("Delete", func() {
		It("should return false for an empty id without querying the store", func() {
			deleted, err := service.Delete(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeFalse())
			Expect(repo.deleteCalls).To(BeZero())
		})

		It("should return false for an unknown id", func() {
			deleted, err := service.Delete(ctx, "missing")

			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})

		It("should delete an existing permission", func() {
			created, err := service.Create(ctx, permission.CreatePermissionDTO{Code: "admin"})
			Expect(err).ToNot(HaveOccurred())

			deleted, err := service.Delete(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeTrue())

			fetched, err := service.GetByID(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(fetched).To(BeNil())
		})
	})
})
