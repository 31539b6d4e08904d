package draft

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Assemble", func() {
	When("every field was extracted", func() {
		var d TransactionDraft

		BeforeEach(func() {
			d = Assemble(fullFields(), "STARBUCKS COFFEE\nTotal: Rs. 450.00\n15/11/2025")
		})

		It("carries the extracted fields through", func() {
			Expect(d.Amount).NotTo(BeNil())
			Expect(d.Merchant).To(Equal("STARBUCKS COFFEE"))
			Expect(d.Date).To(Equal("2025-11-15"))
			Expect(d.Category).To(Equal("Food & Dining"))
		})

		It("derives the description from the merchant", func() {
			Expect(d.Description).To(Equal("Purchase at STARBUCKS COFFEE"))
		})

		It("fills structural defaults", func() {
			Expect(d.Type).To(Equal("expense"))
			Expect(d.PaymentMethod).To(Equal("Not specified"))
		})

		It("counts the items", func() {
			Expect(d.ItemCount).To(Equal(1))
			Expect(d.Items).To(HaveLen(1))
		})

		It("retains the raw text for audit", func() {
			Expect(d.RawText).To(ContainSubstring("STARBUCKS"))
		})

		It("scores and tiers the draft", func() {
			Expect(d.ConfidenceScore).To(Equal(100))
			Expect(d.ConfidenceTier).To(Equal(TierHigh))
		})
	})

	When("every extractor missed", func() {
		var d TransactionDraft

		BeforeEach(func() {
			d = Assemble(emptyFields(), "nothing recognizable")
		})

		It("keeps the documented defaults", func() {
			Expect(d.Amount).To(BeNil())
			Expect(d.Merchant).To(Equal("Unknown Merchant"))
			Expect(d.Category).To(Equal("Other"))
			Expect(d.Tax.IsZero()).To(BeTrue())
			Expect(d.Discount.IsZero()).To(BeTrue())
			Expect(d.ItemCount).To(Equal(0))
		})

		It("scores zero with tier Low", func() {
			Expect(d.ConfidenceScore).To(Equal(0))
			Expect(d.ConfidenceTier).To(Equal(TierLow))
		})
	})
})
