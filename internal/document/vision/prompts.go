package vision

import "fmt"

const extractTextPrompt = `Extract all text from this image, focusing on business and contact information.
Pay particular attention to:
- Names of people and organizations
- Contact information (emails, phone numbers, addresses)
- Job titles and positions
- Company names and industries
- Website URLs and social media handles
- Any other relevant business information

Provide the extracted text in a structured format.`

const leadsFromTextPrompt = `Based on the following text, extract and structure lead information.
Identify all potential leads (people or companies) and return them in JSON format.

For each lead, extract:
- name (person or company name)
- company (if it's a person, their company)
- title (job title or position)
- email (email address)
- phone (phone number)
- address (physical address)
- industry (business industry)
- website (website URL)
- social_media (social media handles as key-value pairs)
- additional_info (any other relevant information)

Text to analyze:
%s

Return the response as a JSON array of lead objects.`

const kycPrompt = `Extract ALL personal identification information from this Indian document image.
Return ONLY a JSON object with the following structure. Do not include any other text or explanations.

Required JSON format:
{
    "name": ["FirstName", "LastName"],
    "gender": "Male/Female/Other",
    "date_of_birth": "DD/MM/YYYY",
    "mobile_number": "10-digit number",
    "aadhaar_number": "12-digit number",
    "pan_number": "10-character PAN",
    "address": "Complete address here"
}

If any field is not found, set it to null.
IMPORTANT: Return ONLY valid JSON, no other text.`

func leadsPrompt(text string) string {
	return fmt.Sprintf(leadsFromTextPrompt, text)
}
