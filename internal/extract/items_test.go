package extract

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Items", func() {
	var (
		text  string
		items []LineItem
	)

	JustBeforeEach(func() {
		items = Items(text)
	})

	When("lines carry a name and trailing price", func() {
		BeforeEach(func() {
			text = "FRESH MART\nMilk 45.00\nBrown Bread 32.50\nTotal 77.50"
		})

		It("emits one item per qualifying line", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Name).To(Equal("Milk"))
			Expect(items[1].Name).To(Equal("Brown Bread"))
		})

		It("defaults quantity to 1", func() {
			Expect(items[0].Quantity).To(Equal(1))
			Expect(items[0].UnitPrice.Equal(decimal.NewFromInt(45))).To(BeTrue())
			Expect(items[0].LineTotal.Equal(decimal.NewFromInt(45))).To(BeTrue())
		})

		It("skips summary lines", func() {
			for _, it := range items {
				Expect(it.Name).NotTo(ContainSubstring("Total"))
			}
		})
	})

	When("a line carries a qty x unit-price sub-pattern", func() {
		BeforeEach(func() {
			text = "Eggs 6 x 8.00 48.00"
		})

		It("recovers quantity and unit price", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Eggs"))
			Expect(items[0].Quantity).To(Equal(6))
			Expect(items[0].UnitPrice.Equal(decimal.NewFromInt(8))).To(BeTrue())
		})

		It("computes the line total from quantity times unit price", func() {
			Expect(items[0].LineTotal.Equal(decimal.NewFromInt(48))).To(BeTrue())
		})
	})

	When("a parsed price is out of range", func() {
		BeforeEach(func() {
			text = "Gold Chain 25000.00\nKeyring 49.00"
		})

		It("drops the line", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Keyring"))
		})
	})

	When("a name is too short", func() {
		BeforeEach(func() {
			text = "AB 12.00"
		})

		It("drops the line", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("lines match the summary filter", func() {
		BeforeEach(func() {
			text = "Subtotal 90.00\nGST 16.20\nThank you for shopping 5.00"
		})

		It("emits nothing", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("the text has no price-bearing lines", func() {
		BeforeEach(func() {
			text = "STARBUCKS COFFEE\nTotal: Rs. 450.00\n15/11/2025"
		})

		It("emits nothing", func() {
			Expect(items).To(BeEmpty())
		})
	})
})
