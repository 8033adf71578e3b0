package domain

// FallbackAnalysis returns the placeholder analysis substituted when the model's
// answer cannot be parsed. Each call returns a fresh copy.
func FallbackAnalysis() *AnalysisResult {
	return &AnalysisResult{
		ContractType: ContractType{
			Category:    "Other",
			Subcategory: "Requires manual classification",
			Description: "Contract type requires detailed manual review",
		},
		Parties: []Party{
			{Name: "Party identification required", Role: "Other", Contact: "Not specified"},
		},
		FinancialTerms: FinancialTerms{
			TotalValue:      "Requires manual extraction",
			Currency:        "Not specified",
			PaymentSchedule: "Payment terms require manual review",
			Penalties:       "Penalty terms require manual review",
			Deposits:        "Deposit terms require manual review",
		},
		ImportantDates: ImportantDates{
			EffectiveDate:  "Not clearly specified",
			ExpirationDate: "Not clearly specified",
			RenewalDate:    "Not specified",
			NoticePeriod:   "Not specified",
			KeyMilestones:  []string{"Manual review required for important dates"},
		},
		RiskAssessment: RiskAssessment{
			OverallRisk: RiskMedium,
			RiskScore:   50,
			RiskFactors: []RiskFactor{
				{Category: "Legal", Description: "Document requires comprehensive manual legal review", Severity: "medium"},
			},
			Recommendations: []string{
				"Engage legal counsel for detailed contract review",
				"Clarify ambiguous terms before signing",
			},
			RedFlags: []string{"Complex document structure requires expert analysis"},
		},
		KeyTerms: KeyTerms{
			TerminationClause:    "Termination terms require manual extraction",
			LiabilityLimits:      "Liability terms require manual review",
			IntellectualProperty: "IP terms require manual review",
			Confidentiality:      "Confidentiality terms require manual review",
			DisputeResolution:    "Dispute resolution terms require manual review",
			GoverningLaw:         "Governing law requires manual identification",
		},
		Obligations: []Obligation{
			{
				Party:        "All Parties",
				Obligations:  []string{"Detailed obligations require manual extraction"},
				Deliverables: []string{"Deliverables require manual identification"},
				Deadlines:    []string{"Deadlines require manual extraction"},
			},
		},
		Summary: "Contract analysis completed with automated extraction. The document contains complex legal language that requires detailed manual review by qualified legal counsel for comprehensive understanding of all terms and implications.",
	}
}
