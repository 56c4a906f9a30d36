package prompt

// fewShotExamples shows the generation model one valid diagram per supported
// mermaid type. Raw string literals cannot contain backticks, so the fence
// lines are spliced in via concatenation.
const fewShotExamples = "- Sequence diagram:\n\n" +
	"```mermaid\n" +
	`sequenceDiagram
    Alice->>John: Hello John, how are you?
    John-->>Alice: Great!
    Alice-)John: See you later!
` + "```\n\n- Flow chart:\n\n" +
	"```mermaid\n" +
	`flowchart LR
    Logger["LogManager"] --> TaskA["logger.get_logger('data_preprocessing')"]
    Logger --> TaskB["logger.get_logger('model_training')"]
    TaskA -->|writes| FileA["preprocess.log"]
    TaskB -->|writes| FileB["training.log"]
` + "```\n\n" +
	`Possible FlowChart orientations are:
TB: Top to bottom
TD: Top-down/ same as top to bottom
BT: Bottom to top
RL: Right to left
LR: Left to right

- Class diagram:

` + "```mermaid\n" +
	`classDiagram
    Animal <|-- Duck
    Animal <|-- Fish
    Animal : +int age
    Animal : +String gender
    Animal: +isMammal()
    class Duck{
        +String beakColor
        +swim()
        +quack()
    }
    class Fish{
        -int sizeInFeet
        -canEat()
    }
` + "```\n\n- Pie chart:\n\n" +
	"```mermaid\n" +
	`pie showData
    title Key elements in Product X
    "Calcium" : 42.96
    "Potassium" : 50.05
    "Magnesium" : 10.01
    "Iron" : 5
` + "```\n\n- Quadrant chart:\n\n" +
	"```mermaid\n" +
	`quadrantChart
    title Reach and engagement of campaigns
    x-axis Low Reach --> High Reach
    y-axis Low Engagement --> High Engagement
    quadrant-1 We should expand
    quadrant-2 Need to promote
    quadrant-3 Re-evaluate
    quadrant-4 May be improved
    Campaign A: [0.3, 0.6]
    Campaign B: [0.45, 0.23]
    Campaign C: [0.57, 0.69]
` + "```\n\n- Timeline:\n\n" +
	"```mermaid\n" +
	`timeline
    title History of Social Media Platform
    2002 : LinkedIn
    2004 : Facebook
        : Google
    2005 : YouTube
    2006 : Twitter
` + "```\n\n- Gantt chart:\n\n" +
	"```mermaid\n" +
	`gantt
    dateFormat  YYYY-MM-DD
    title       Adding GANTT diagram functionality to mermaid
    excludes    weekends

    section A section
    Completed task            :done,    des1, 2014-01-06,2014-01-08
    Active task               :active,  des2, 2014-01-09, 3d
    Future task               :         des3, after des2, 5d
    Future task2              :         des4, after des3, 5d
` + "```\n"
