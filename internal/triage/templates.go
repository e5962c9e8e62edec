package triage

// Response templates, one per symptom category. Each carries the same four
// labeled sections in order: Possible Conditions, Likely Causes, Basic Care
// Guidelines, Seek Medical Attention If. The extractor's label patterns key
// on this phrasing, so the wording is load-bearing.
var templates = map[Category]string{
	CategoryFever: `**Symptom Analysis: Fever**

**Possible Conditions:**
• Viral infections (common cold, flu)
• Bacterial infections (strep throat, UTI)
• COVID-19 or other respiratory illnesses
• Inflammatory conditions

**Likely Causes:**
• Body's immune response to infection
• Dehydration or heat exhaustion
• Medication side effects
• Autoimmune disorders

**Basic Care Guidelines:**
• Rest and adequate sleep (8+ hours)
• Increase fluid intake (water, clear broths)
• Use fever reducers: Acetaminophen (500-1000mg every 6-8 hours) or Ibuprofen (200-400mg every 6-8 hours)
• Cool compresses on forehead
• Light, breathable clothing

**Seek Medical Attention If:**
- Fever above 103°F (39.4°C)
- Persistent fever for more than 3 days
- Difficulty breathing or chest pain
- Severe headache or neck stiffness
- Signs of dehydration`,

	CategoryCough: `**Symptom Analysis: Cough**

**Possible Conditions:**
• Upper respiratory tract infection
• Bronchitis or pneumonia
• Allergic reactions
• Asthma exacerbation
• GERD (acid reflux)

**Likely Causes:**
• Viral or bacterial infection
• Environmental irritants (smoke, dust)
• Postnasal drip
• Chronic conditions (asthma, COPD)

**Basic Care Guidelines:**
• Stay hydrated (warm liquids preferred)
• Honey (1-2 teaspoons) for throat soothing
• Humidifier or steam inhalation
• Throat lozenges or salt water gargle
• Avoid smoking and irritants
• Over-the-counter: Dextromethorphan (15mg every 4 hours) for dry cough

**Seek Medical Attention If:**
- Cough persists longer than 3 weeks
- Blood in sputum
- High fever with productive cough
- Difficulty breathing or wheezing
- Chest pain with coughing`,

	CategoryHeadache: `**Symptom Analysis: Headache**

**Possible Conditions:**
• Tension headache (most common)
• Migraine headache
• Sinus infection
• Dehydration headache
• Stress-related headache

**Likely Causes:**
• Stress and muscle tension
• Dehydration or lack of sleep
• Eye strain from screens
• Hormonal changes
• Certain foods or caffeine withdrawal

**Basic Care Guidelines:**
• Rest in a quiet, dark room
• Apply cold or warm compress to head/neck
• Stay hydrated (8-10 glasses of water daily)
• Gentle neck and shoulder massage
• Pain relievers: Acetaminophen (500-1000mg) or Ibuprofen (200-400mg)
• Regular sleep schedule (7-9 hours)

**Seek Medical Attention If:**
- Sudden, severe headache ("worst headache of life")
- Headache with fever, stiff neck, or rash
- Changes in vision or speech
- Headache after head injury
- Progressively worsening headaches`,

	CategoryGastrointestinal: `**Symptom Analysis: Stomach Issues/Nausea**

**Possible Conditions:**
• Gastroenteritis (stomach flu)
• Food poisoning
• Acid reflux or GERD
• Stress-related gastritis
• Medication side effects

**Likely Causes:**
• Viral or bacterial infection
• Contaminated food or water
• Stress and anxiety
• Certain medications
• Overeating or spicy foods

**Basic Care Guidelines:**
• Clear liquids (water, clear broths, electrolyte solutions)
• BRAT diet: Bananas, Rice, Applesauce, Toast
• Small, frequent meals
• Avoid dairy, caffeine, and fatty foods
• Ginger tea or ginger supplements
• Anti-nausea: Dramamine (25-50mg every 4-6 hours)

**Seek Medical Attention If:**
- Persistent vomiting for more than 24 hours
- Signs of dehydration (dizziness, dry mouth)
- Severe abdominal pain
- Blood in vomit or stool
- High fever with stomach symptoms`,
}

// generalTemplate interpolates the verbatim query into its heading
const generalTemplate = `**Health Assessment: General Inquiry**

**Based on your question about "%s":**

**Recommended Approach:**
• Monitor symptoms carefully for 24-48 hours
• Keep a symptom diary (timing, severity, triggers)
• Maintain good hydration and rest
• Consider lifestyle factors (stress, diet, sleep)

**General Wellness Guidelines:**
• Adequate sleep (7-9 hours nightly)
• Balanced nutrition with fruits and vegetables
• Regular physical activity (30 minutes daily)
• Stress management techniques
• Avoid smoking and limit alcohol

**Basic Medications (if appropriate):**
• Pain relief: Acetaminophen or Ibuprofen (follow package directions)
• Hydration: Electrolyte solutions
• Vitamins: Multivitamin if dietary intake is poor

**When to Seek Professional Care:**
- Symptoms worsen or persist beyond normal timeframe
- New or concerning symptoms develop
- You have underlying health conditions
- Medication interactions are a concern`

// Disclaimer is appended to every response, template or AI-backed alike.
// Constant across categories.
const Disclaimer = `

**⚠️ IMPORTANT MEDICAL DISCLAIMER:**
This information is for educational purposes only and is NOT intended to replace professional medical advice, diagnosis, or treatment. Always consult with a qualified healthcare provider before starting any treatment or medication. If this is a medical emergency, contact emergency services (911) immediately.

**Medication Guidelines:**
- Follow all package directions and dosing instructions
- Check for drug allergies and interactions
- Consult pharmacist or doctor before combining medications
- Stop use if adverse reactions occur`
