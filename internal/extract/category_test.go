package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category", func() {
	var (
		merchant string
		text     string
		result   string
	)

	BeforeEach(func() {
		merchant = UnknownMerchant
		text = ""
	})

	JustBeforeEach(func() {
		result = Category(merchant, text)
	})

	When("the merchant name carries a keyword", func() {
		BeforeEach(func() {
			merchant = "STARBUCKS COFFEE"
		})

		It("matches case-insensitively", func() {
			Expect(result).To(Equal("Food & Dining"))
		})
	})

	When("only the body text carries a keyword", func() {
		BeforeEach(func() {
			text = "Apollo Pharmacy\nParacetamol 35.00"
		})

		It("still matches", func() {
			Expect(result).To(Equal("Healthcare"))
		})
	})

	When("keywords from two categories appear", func() {
		BeforeEach(func() {
			text = "uber ride to the pharmacy"
		})

		It("the category declared first wins regardless of keyword position", func() {
			Expect(result).To(Equal("Transportation"))
		})
	})

	When("keywords from the first two categories appear", func() {
		BeforeEach(func() {
			text = "ordered on amazon, paid at the cafe"
		})

		It("Food & Dining wins over Shopping", func() {
			Expect(result).To(Equal("Food & Dining"))
		})
	})

	When("no keyword matches", func() {
		BeforeEach(func() {
			text = "plain receipt with nothing notable"
		})

		It("returns Other", func() {
			Expect(result).To(Equal(CategoryOther))
		})
	})
})
