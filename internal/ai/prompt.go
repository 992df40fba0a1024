package ai

import (
	"fmt"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

const instructionTemplate = `You are a helpful genetic assistant.

USER'S CONFIRMED RISKS:
%s
INSTRUCTIONS:
1. Focus ONLY on the confirmed risks listed above.
2. Explain what the gene/condition is in simple terms.
3. Pay attention to zygosity. If it is heterozygous, remind the user they are likely just a carrier (healthy).
4. If it is homozygous, this is more significant.`

// BuildPrompt renders the assistant instructions with the finding context.
// Only gene, condition, genotype and zygosity reach the model.
func BuildPrompt(contexts []models.ExplanationContext) string {
	var sb strings.Builder
	if len(contexts) == 0 {
		sb.WriteString("No confirmed pathogenic risks were found.\n")
	}
	for _, c := range contexts {
		fmt.Fprintf(&sb, "- Gene: %s, Condition: %s, Genotype: %s, Zygosity: %s\n",
			c.GeneSymbol, c.Condition, c.Genotype, c.Zygosity.Label())
	}
	return fmt.Sprintf(instructionTemplate, sb.String())
}
