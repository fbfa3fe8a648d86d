package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpenAPIContract(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPI Contract Suite")
}

const specPath = "../../../api/openapi.yml"

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile(specPath)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should describe every registered route", func() {
		for _, path := range []string{
			"/health",
			"/ping",
			"/auth/login",
			"/auth/refresh",
			"/auth/logout",
			"/users",
			"/users/me",
			"/users/{id}",
			"/permissions",
			"/permissions/{id}",
		} {
			Expect(doc.Paths.Find(path)).ToNot(BeNil(), "path %s missing from spec", path)
		}
	})

	It("should document partial update semantics without required fields", func() {
		update := doc.Components.Schemas["UpdateUserRequest"]
		Expect(update).ToNot(BeNil())
		Expect(update.Value.Required).To(BeEmpty())
		Expect(update.Value.Properties).To(HaveKey("status"))
	})

	It("should never expose a password field on the user schema", func() {
		userSchema := doc.Components.Schemas["User"]
		Expect(userSchema).ToNot(BeNil())
		Expect(userSchema.Value.Properties).ToNot(HaveKey("password"))
	})

	It("should paginate the user list with count, current_page and total_pages", func() {
		page := doc.Components.Schemas["PaginatedUsers"]
		Expect(page).ToNot(BeNil())
		for _, field := range []string{"count", "current_page", "results", "total_pages"} {
			Expect(page.Value.Properties).To(HaveKey(field))
		}
	})
})
