package service

// ContractAnalystPrompt is the system instruction for contract analysis.
const ContractAnalystPrompt = "You are an expert legal contract analyst with 20+ years of experience. Always respond with valid JSON only, no additional text. Be thorough and specific in your analysis."

// BuildContractAnalysisPrompt returns the analysis prompt with the complete document text embedded.
func BuildContractAnalysisPrompt(documentText string) string {
	return `You are an expert legal contract analyst with extensive experience in contract law, risk assessment, and business negotiations. Analyze the following contract document comprehensively and provide detailed insights.

COMPLETE CONTRACT DOCUMENT:
` + documentText + `

Please provide a comprehensive analysis in this exact JSON structure. Be thorough and specific in your analysis:

{
  "contractType": {
    "category": "Real Estate|Employment|Service Agreement|Lease|Purchase|Partnership|NDA|License|Other",
    "subcategory": "Specific type (e.g., Residential Lease, Software License, etc.)",
    "description": "Brief description of what this contract governs"
  },
  "parties": [
    {
      "name": "Full legal name of party",
      "role": "Landlord|Tenant|Buyer|Seller|Employer|Employee|Client|Service Provider|Licensor|Licensee|Other",
      "contact": "Contact information if available"
    }
  ],
  "financialTerms": {
    "totalValue": "Total contract value with currency",
    "currency": "USD|EUR|GBP|Other or Not Specified",
    "paymentSchedule": "Detailed payment schedule and frequency",
    "penalties": "Late fees, penalties, or liquidated damages",
    "deposits": "Security deposits, earnest money, or advance payments"
  },
  "importantDates": {
    "effectiveDate": "Contract start date",
    "expirationDate": "Contract end date or duration",
    "renewalDate": "Renewal or extension dates",
    "noticePeriod": "Required notice period for termination",
    "keyMilestones": ["Important deadlines", "delivery dates", "review periods"]
  },
  "riskAssessment": {
    "overallRisk": "low|medium|high|critical",
    "riskScore": 1-100,
    "riskFactors": [
      {
        "category": "Financial|Legal|Operational|Compliance|Performance",
        "description": "Specific risk description",
        "severity": "low|medium|high"
      }
    ],
    "recommendations": ["Specific actionable recommendations"],
    "redFlags": ["Critical issues requiring immediate attention"]
  },
  "keyTerms": {
    "terminationClause": "How the contract can be terminated",
    "liabilityLimits": "Liability limitations and caps",
    "intellectualProperty": "IP ownership and usage rights",
    "confidentiality": "Confidentiality and non-disclosure terms",
    "disputeResolution": "How disputes will be resolved",
    "governingLaw": "Which jurisdiction's laws apply"
  },
  "obligations": [
    {
      "party": "Party name",
      "obligations": ["Specific obligations and responsibilities"],
      "deliverables": ["What must be delivered"],
      "deadlines": ["When deliverables are due"]
    }
  ],
  "summary": "Comprehensive 3-4 sentence executive summary covering purpose, key terms, and overall assessment"
}

ANALYSIS REQUIREMENTS:
1. Identify the exact type of contract (lease, employment, service, purchase, etc.)
2. Extract all party names and their roles clearly
3. Find all monetary amounts, payment terms, and financial obligations
4. Identify all important dates, deadlines, and time periods
5. Assess risks comprehensively across financial, legal, and operational dimensions
6. Provide specific, actionable recommendations
7. Flag any unusual, unfavorable, or potentially problematic clauses
8. Be specific with amounts, dates, and terms - avoid generic responses

Focus on practical business implications and provide insights that would help in decision-making.
`
}
