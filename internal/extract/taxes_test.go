package extract

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TaxAndDiscount", func() {
	var (
		text     string
		tax      decimal.Decimal
		discount decimal.Decimal
	)

	JustBeforeEach(func() {
		tax, discount = TaxAndDiscount(text)
	})

	When("the text has GST components", func() {
		BeforeEach(func() {
			text = "CGST @ 9%: 20.25\nSGST @ 9%: 20.25\nTotal GST: 40.50"
		})

		It("takes the maximum in-range tax match", func() {
			Expect(tax.Equal(decimal.RequireFromString("40.50"))).To(BeTrue())
		})

		It("leaves discount at zero", func() {
			Expect(discount.IsZero()).To(BeTrue())
		})
	})

	When("the text has a discount line", func() {
		BeforeEach(func() {
			text = "Discount: Rs 50.00\nYou saved 75.00"
		})

		It("takes the maximum discount match", func() {
			Expect(discount.Equal(decimal.NewFromInt(75))).To(BeTrue())
		})
	})

	When("a match is out of range", func() {
		BeforeEach(func() {
			text = "VAT 15000.00\nTax 120.00"
		})

		It("ignores values at or above ten thousand", func() {
			Expect(tax.Equal(decimal.NewFromInt(120))).To(BeTrue())
		})
	})

	When("nothing matches", func() {
		BeforeEach(func() {
			text = "no fiscal footer on this one"
		})

		It("defaults both to zero", func() {
			Expect(tax.IsZero()).To(BeTrue())
			Expect(discount.IsZero()).To(BeTrue())
		})
	})
})
